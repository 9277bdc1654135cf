package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kamilwozniak/portfolio/backend/internal/auth"
	"github.com/kamilwozniak/portfolio/backend/internal/config"
	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"github.com/kamilwozniak/portfolio/backend/internal/database"
	"github.com/kamilwozniak/portfolio/backend/internal/logging"
	"github.com/kamilwozniak/portfolio/backend/internal/media"
	"github.com/kamilwozniak/portfolio/backend/internal/oauth"
	"github.com/kamilwozniak/portfolio/backend/internal/server"
	"github.com/kamilwozniak/portfolio/backend/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portfolio-api",
		Short: "Portfolio CMS backend service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("signing-secret", "", "Session token signing secret (overrides env)")
	cmd.PersistentFlags().String("admin-emails", "", "Comma-separated admin allow-list (overrides env)")
	cmd.PersistentFlags().Int("token-ttl-hours", defaults.GetInt("auth.token_ttl_hours"), "Session token TTL in hours")
	cmd.PersistentFlags().String("frontend-url", defaults.GetString("frontend.url"), "Public frontend origin")
	cmd.PersistentFlags().String("public-url", defaults.GetString("server.public_url"), "Public API origin for OAuth callbacks")
	cmd.PersistentFlags().String("upload-path", defaults.GetString("upload.path"), "Upload root directory")
	cmd.PersistentFlags().String("github-client-id", "", "GitHub OAuth client ID")
	cmd.PersistentFlags().String("github-client-secret", "", "GitHub OAuth client secret")
	cmd.PersistentFlags().String("google-client-id", "", "Google OAuth client ID")
	cmd.PersistentFlags().String("google-client-secret", "", "Google OAuth client secret")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "auth.signing_secret", "signing-secret")
	bindFlag(cmd, "auth.admin_emails", "admin-emails")
	bindFlag(cmd, "auth.token_ttl_hours", "token-ttl-hours")
	bindFlag(cmd, "frontend.url", "frontend-url")
	bindFlag(cmd, "server.public_url", "public-url")
	bindFlag(cmd, "upload.path", "upload-path")
	bindFlag(cmd, "oauth.github.client_id", "github-client-id")
	bindFlag(cmd, "oauth.github.client_secret", "github-client-secret")
	bindFlag(cmd, "oauth.google.client_id", "google-client-id")
	bindFlag(cmd, "oauth.google.client_secret", "google-client-secret")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	tokens, err := auth.NewTokenCodec(auth.TokenCodecConfig{
		SigningSecret: []byte(appConfig.SigningSecret),
		TokenTTL:      appConfig.TokenTTL,
	})
	if err != nil {
		return err
	}
	directory := auth.NewAdminDirectory(appConfig.AdminEmails)
	logger.Info("admin directory loaded", zap.Int("entries", directory.Size()))

	usersService, err := users.NewService(users.ServiceConfig{
		Database: db,
		Admins:   directory,
	})
	if err != nil {
		return err
	}
	contentService, err := content.NewService(content.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	mediaService, err := media.NewService(media.ServiceConfig{
		Database:     db,
		UploadDir:    appConfig.UploadPath,
		AllowedTypes: appConfig.AllowedTypes,
	})
	if err != nil {
		return err
	}

	providers, err := buildProviders(ctx, appConfig, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Tokens:          tokens,
		Providers:       providers,
		UsersService:    usersService,
		ContentService:  contentService,
		MediaService:    mediaService,
		Logger:          logger,
		FrontendURL:     appConfig.FrontendURL,
		CookieSecure:    appConfig.CookieSecure(),
		MetricsRegistry: registry,
		AllowedOrigins:  appConfig.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// buildProviders registers every provider whose credentials are present.
// Running with no providers is allowed; the public content API still works.
func buildProviders(ctx context.Context, appConfig config.AppConfig, logger *zap.Logger) (*oauth.Registry, error) {
	var providers []oauth.Provider

	if appConfig.GitHub.Configured() {
		github, err := oauth.NewGitHubProvider(oauth.GitHubConfig{
			ClientID:     appConfig.GitHub.ClientID,
			ClientSecret: appConfig.GitHub.ClientSecret,
			RedirectURL:  appConfig.RedirectURL("github"),
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, github)
	}

	if appConfig.Google.Configured() {
		google, err := oauth.NewGoogleProvider(ctx, oauth.GoogleConfig{
			ClientID:     appConfig.Google.ClientID,
			ClientSecret: appConfig.Google.ClientSecret,
			RedirectURL:  appConfig.RedirectURL("google"),
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, google)
	}

	registry := oauth.NewRegistry(providers...)
	logger.Info("oauth providers registered", zap.Strings("providers", registry.Names()))
	return registry, nil
}
