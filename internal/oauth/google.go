package oauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	googleProviderName = "google"
	googleIssuer       = "https://accounts.google.com"
)

// GoogleConfig configures the Google provider.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleProvider authenticates users through Google's OIDC flow. The
// profile comes from the verified id_token claims, never from an
// unauthenticated userinfo call.
type GoogleProvider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

// NewGoogleProvider performs OIDC discovery against the Google issuer and
// constructs the provider.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("oauth: google config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("oauth: failed to init google oidc provider: %w", err)
	}

	return &GoogleProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *GoogleProvider) Name() string {
	return googleProviderName
}

// AuthCodeURL builds the Google authorization URL.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for tokens and extracts the
// profile from the verified id_token.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("oauth: google token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return Profile{}, errors.New("oauth: google did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Profile{}, fmt.Errorf("oauth: google id_token verification failed: %w", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Profile{}, fmt.Errorf("oauth: google id_token claims parse failed: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return Profile{}, errors.New("oauth: google id_token missing required claims")
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = claims.Email
	}

	return Profile{
		Provider:  googleProviderName,
		Subject:   claims.Subject,
		Email:     claims.Email,
		Name:      name,
		AvatarURL: claims.Picture,
	}, nil
}
