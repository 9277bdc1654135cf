package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	githubProviderName       = "github"
	defaultGitHubUserInfoURL = "https://api.github.com/user"
)

// GitHubConfig configures the GitHub provider.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint and UserInfoURL are overridable for tests.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// GitHubProvider authenticates users through GitHub's OAuth2 flow. GitHub
// is not an OIDC issuer, so the profile comes from its REST user endpoint.
type GitHubProvider struct {
	oauthConfig *oauth2.Config
	userInfoURL string
}

// NewGitHubProvider constructs the GitHub variant.
func NewGitHubProvider(cfg GitHubConfig) (*GitHubProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("oauth: github config missing required fields")
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultGitHubUserInfoURL
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = github.Endpoint
	}
	return &GitHubProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		userInfoURL: userInfoURL,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *GitHubProvider) Name() string {
	return githubProviderName
}

// AuthCodeURL builds the GitHub authorization URL.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// githubUser mirrors the fields consumed from GitHub's user endpoint.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Exchange trades the authorization code for an access token and fetches
// the user profile. GitHub may withhold the account email (private email
// setting), in which case a placeholder of the form {login}@github.user
// is synthesized so the identity still has a stable key.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("oauth: github token exchange failed: %w", err)
	}

	user, err := p.fetchUser(ctx, token)
	if err != nil {
		return Profile{}, err
	}
	if user.Login == "" {
		return Profile{}, errors.New("oauth: github profile missing login")
	}

	email := strings.TrimSpace(user.Email)
	if email == "" {
		email = user.Login + "@github.user"
	}
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Login
	}

	return Profile{
		Provider:  githubProviderName,
		Subject:   strconv.FormatInt(user.ID, 10),
		Email:     email,
		Name:      name,
		AvatarURL: user.AvatarURL,
	}, nil
}

func (p *GitHubProvider) fetchUser(ctx context.Context, token *oauth2.Token) (githubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return githubUser{}, fmt.Errorf("oauth: failed to create github user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := p.oauthConfig.Client(ctx, token)
	resp, err := client.Do(req)
	if err != nil {
		return githubUser{}, fmt.Errorf("oauth: github user request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return githubUser{}, fmt.Errorf("oauth: github user endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return githubUser{}, fmt.Errorf("oauth: failed to decode github profile: %w", err)
	}
	return user, nil
}
