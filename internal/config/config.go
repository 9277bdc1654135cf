package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix            = "PORTFOLIO"
	defaultHTTPAddress   = "0.0.0.0:8080"
	defaultDatabasePath  = "portfolio.db"
	defaultLogLevel      = "info"
	defaultFrontendURL   = "http://localhost:5173"
	defaultPublicURL     = "http://localhost:8080"
	defaultUploadPath    = "uploads"
	defaultAllowedTypes  = "image/png,image/jpeg,image/webp,image/gif,video/mp4"
	defaultTokenTTLHours = 24
)

// OAuthClient holds one provider's client credentials.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether the client credentials are present.
func (c OAuthClient) Configured() bool {
	return strings.TrimSpace(c.ClientID) != "" && strings.TrimSpace(c.ClientSecret) != ""
}

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress    string
	DatabasePath   string
	LogLevel       string
	SigningSecret  string
	AdminEmails    string
	TokenTTL       time.Duration
	FrontendURL    string
	PublicURL      string
	AllowedOrigins []string
	UploadPath     string
	AllowedTypes   string
	GitHub         OAuthClient
	Google         OAuthClient
}

// CookieSecure reports whether session cookies must carry the Secure
// flag; true when the public frontend is served over HTTPS.
func (c AppConfig) CookieSecure() bool {
	return strings.HasPrefix(c.FrontendURL, "https://")
}

// RedirectURL builds the provider callback URL on the public origin.
func (c AppConfig) RedirectURL(provider string) string {
	return strings.TrimRight(c.PublicURL, "/") + "/login/oauth2/code/" + provider
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("auth.token_ttl_hours", defaultTokenTTLHours)
	configViper.SetDefault("frontend.url", defaultFrontendURL)
	configViper.SetDefault("server.public_url", defaultPublicURL)
	configViper.SetDefault("upload.path", defaultUploadPath)
	configViper.SetDefault("upload.allowed_types", defaultAllowedTypes)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:   configViper.GetString("http.address"),
		DatabasePath:  configViper.GetString("database.path"),
		LogLevel:      configViper.GetString("log.level"),
		SigningSecret: configViper.GetString("auth.signing_secret"),
		AdminEmails:   configViper.GetString("auth.admin_emails"),
		TokenTTL:      time.Duration(configViper.GetInt("auth.token_ttl_hours")) * time.Hour,
		FrontendURL:   strings.TrimRight(configViper.GetString("frontend.url"), "/"),
		PublicURL:     configViper.GetString("server.public_url"),
		UploadPath:    configViper.GetString("upload.path"),
		AllowedTypes:  configViper.GetString("upload.allowed_types"),
		GitHub: OAuthClient{
			ClientID:     configViper.GetString("oauth.github.client_id"),
			ClientSecret: configViper.GetString("oauth.github.client_secret"),
		},
		Google: OAuthClient{
			ClientID:     configViper.GetString("oauth.google.client_id"),
			ClientSecret: configViper.GetString("oauth.google.client_secret"),
		},
	}

	origins := configViper.GetString("cors.allowed_origins")
	if strings.TrimSpace(origins) == "" {
		origins = cfg.FrontendURL
	}
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.SigningSecret) == "" {
		return fmt.Errorf("auth.signing_secret is required")
	}
	if strings.TrimSpace(c.AdminEmails) == "" {
		return fmt.Errorf("auth.admin_emails is required")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.FrontendURL) == "" {
		return fmt.Errorf("frontend.url is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl_hours must be positive")
	}
	return nil
}
