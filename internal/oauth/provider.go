package oauth

import "context"

// Profile is the normalized identity returned by a provider after a
// successful callback exchange. Provider-specific quirks (missing email,
// missing display name) are resolved inside each variant so the rest of
// the system only ever sees a complete profile.
type Profile struct {
	Provider  string
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// Provider is the contract every federated identity provider implements.
// Implementations return identity facts only; user creation, admin
// checks, and session management happen in the login handler.
type Provider interface {
	// Name returns the provider identifier (e.g. "github", "google").
	Name() string

	// AuthCodeURL returns the provider authorization URL for the given
	// anti-forgery state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for provider credentials
	// and returns the normalized profile.
	Exchange(ctx context.Context, code string) (Profile, error)
}
