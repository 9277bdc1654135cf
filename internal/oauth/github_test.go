package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func newGitHubTestServer(t *testing.T, userJSON string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gho_test","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newGitHubTestProvider(t *testing.T, server *httptest.Server) *GitHubProvider {
	t.Helper()
	provider, err := NewGitHubProvider(GitHubConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/login/oauth2/code/github",
		Endpoint: oauth2.Endpoint{
			AuthURL:  server.URL + "/login/oauth/authorize",
			TokenURL: server.URL + "/login/oauth/access_token",
		},
		UserInfoURL: server.URL + "/user",
	})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return provider
}

func TestGitHubExchangeNormalizesFullProfile(t *testing.T) {
	server := newGitHubTestServer(t, `{
		"id": 583231,
		"login": "octocat",
		"name": "The Octocat",
		"email": "octocat@example.com",
		"avatar_url": "https://avatars.example.com/u/583231"
	}`)
	provider := newGitHubTestProvider(t, server)

	profile, err := provider.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected exchange error: %v", err)
	}
	if profile.Provider != "github" {
		t.Fatalf("unexpected provider %s", profile.Provider)
	}
	if profile.Subject != "583231" {
		t.Fatalf("unexpected subject %s", profile.Subject)
	}
	if profile.Email != "octocat@example.com" {
		t.Fatalf("unexpected email %s", profile.Email)
	}
	if profile.Name != "The Octocat" {
		t.Fatalf("unexpected name %s", profile.Name)
	}
	if profile.AvatarURL != "https://avatars.example.com/u/583231" {
		t.Fatalf("unexpected avatar %s", profile.AvatarURL)
	}
}

func TestGitHubExchangeSynthesizesMissingEmail(t *testing.T) {
	server := newGitHubTestServer(t, `{
		"id": 583231,
		"login": "octocat",
		"name": null,
		"email": null,
		"avatar_url": "https://avatars.example.com/u/583231"
	}`)
	provider := newGitHubTestProvider(t, server)

	profile, err := provider.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected exchange error: %v", err)
	}
	if profile.Email != "octocat@github.user" {
		t.Fatalf("expected synthesized email, got %s", profile.Email)
	}
	if profile.Name != "octocat" {
		t.Fatalf("expected login fallback name, got %s", profile.Name)
	}
}

func TestGitHubExchangeRejectsProfileWithoutLogin(t *testing.T) {
	server := newGitHubTestServer(t, `{"id": 1}`)
	provider := newGitHubTestProvider(t, server)

	if _, err := provider.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatalf("expected error for profile without login")
	}
}

func TestGitHubExchangeSurfacesUserEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gho_test","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	provider := newGitHubTestProvider(t, server)
	if _, err := provider.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatalf("expected error when the user endpoint fails")
	}
}

func TestNewGitHubProviderRequiresConfig(t *testing.T) {
	if _, err := NewGitHubProvider(GitHubConfig{ClientID: "only-id"}); err == nil {
		t.Fatalf("expected constructor error for incomplete config")
	}
}

func TestRegistryLookup(t *testing.T) {
	server := newGitHubTestServer(t, `{}`)
	provider := newGitHubTestProvider(t, server)

	registry := NewRegistry(provider)
	found, err := registry.Get("github")
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if found.Name() != "github" {
		t.Fatalf("unexpected provider %s", found.Name())
	}
	if _, err := registry.Get("gitlab"); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}
