package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kamilwozniak/portfolio/backend/internal/auth"
	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"github.com/kamilwozniak/portfolio/backend/internal/media"
	"github.com/kamilwozniak/portfolio/backend/internal/metrics"
	"github.com/kamilwozniak/portfolio/backend/internal/oauth"
	"github.com/kamilwozniak/portfolio/backend/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	errMissingTokenCodec     = errors.New("token codec dependency required")
	errMissingProviders      = errors.New("oauth provider registry dependency required")
	errMissingUsersService   = errors.New("users service dependency required")
	errMissingContentService = errors.New("content service dependency required")
	errMissingMediaService   = errors.New("media service dependency required")
	errMissingFrontendURL    = errors.New("frontend url required")
)

// Dependencies wires the HTTP layer to the rest of the system.
type Dependencies struct {
	Tokens         *auth.TokenCodec
	Providers      *oauth.Registry
	UsersService   *users.Service
	ContentService *content.Service
	MediaService   *media.Service
	Logger         *zap.Logger

	// FrontendURL is the public site origin used for post-login
	// redirects. CookieSecure marks session cookies Secure.
	FrontendURL  string
	CookieSecure bool

	// MetricsRegistry is optional; when nil a private registry is used.
	MetricsRegistry *prometheus.Registry
	AllowedOrigins  []string
}

// NewHTTPHandler assembles the gin router.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Tokens == nil {
		return nil, errMissingTokenCodec
	}
	if deps.Providers == nil {
		return nil, errMissingProviders
	}
	if deps.UsersService == nil {
		return nil, errMissingUsersService
	}
	if deps.ContentService == nil {
		return nil, errMissingContentService
	}
	if deps.MediaService == nil {
		return nil, errMissingMediaService
	}
	if deps.FrontendURL == "" {
		return nil, errMissingFrontendURL
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := deps.MetricsRegistry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{deps.FrontendURL}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Authorization", "Content-Type", "Accept",
			"Accept-Language", "X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))

	handler := &httpHandler{
		tokens:    deps.Tokens,
		providers: deps.Providers,
		users:     deps.UsersService,
		content:   deps.ContentService,
		media:     deps.MediaService,
		metrics:   collector,
		logger:    logger,

		frontendURL:  deps.FrontendURL,
		cookieSecure: deps.CookieSecure,
		cookieMaxAge: int(deps.Tokens.TokenTTL().Seconds()),
	}

	router.Use(handler.recordRequest)
	router.Use(handler.attachPrincipal)

	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	// Federated login entry points and provider callback.
	router.GET("/oauth2/authorization/:provider", handler.handleAuthorize)
	router.GET("/login/oauth2/code/:provider", handler.handleCallback)

	api := router.Group("/api")
	{
		api.GET("/health", handler.handleHealth)
		api.GET("/posts", handler.handleListPosts)
		api.GET("/posts/:slug", handler.handleGetPostBySlug)
		api.GET("/hashtags", handler.handleListHashtags)
		api.GET("/categories", handler.handleListCategories)
		api.GET("/experiences", handler.handleListExperiences)
		api.GET("/skill-categories", handler.handleListSkillCategories)
		api.GET("/soft-skills", handler.handleListSoftSkills)
		api.GET("/settings", handler.handleGetSettings)
	}

	// Uploaded files are public reads; everything else under the
	// upload root is admin-managed.
	router.Static("/api/media", deps.MediaService.UploadDir())

	admin := router.Group("/api/admin")
	admin.Use(handler.requireAdmin)
	{
		admin.GET("/auth/me", handler.handleCurrentUser)
		admin.POST("/auth/logout", handler.handleLogout)

		admin.GET("/posts", handler.handleAdminListPosts)
		admin.POST("/posts", handler.handleCreatePost)
		admin.POST("/posts/reorder", handler.handleReorderPosts)
		admin.GET("/posts/:id", handler.handleAdminGetPost)
		admin.PUT("/posts/:id", handler.handleUpdatePost)
		admin.DELETE("/posts/:id", handler.handleDeletePost)

		admin.GET("/experiences", handler.handleAdminListExperiences)
		admin.POST("/experiences", handler.handleCreateExperience)
		admin.POST("/experiences/reorder", handler.handleReorderExperiences)
		admin.PUT("/experiences/:id", handler.handleUpdateExperience)
		admin.DELETE("/experiences/:id", handler.handleDeleteExperience)

		admin.GET("/skill-categories", handler.handleAdminListSkillCategories)
		admin.POST("/skill-categories", handler.handleCreateSkillCategory)
		admin.POST("/skill-categories/reorder", handler.handleReorderSkillCategories)
		admin.PUT("/skill-categories/:id", handler.handleUpdateSkillCategory)
		admin.DELETE("/skill-categories/:id", handler.handleDeleteSkillCategory)

		admin.GET("/soft-skills", handler.handleAdminListSoftSkills)
		admin.POST("/soft-skills", handler.handleCreateSoftSkill)
		admin.POST("/soft-skills/reorder", handler.handleReorderSoftSkills)
		admin.PUT("/soft-skills/:id", handler.handleUpdateSoftSkill)
		admin.DELETE("/soft-skills/:id", handler.handleDeleteSoftSkill)

		admin.GET("/settings", handler.handleAdminGetSettings)
		admin.PUT("/settings", handler.handleUpdateSettings)

		admin.GET("/media", handler.handleListMedia)
		admin.POST("/media", handler.handleUploadMedia)
		admin.DELETE("/media/:id", handler.handleDeleteMedia)
	}

	return router, nil
}

type httpHandler struct {
	tokens    *auth.TokenCodec
	providers *oauth.Registry
	users     *users.Service
	content   *content.Service
	media     *media.Service
	metrics   *metrics.Collector
	logger    *zap.Logger

	frontendURL  string
	cookieSecure bool
	cookieMaxAge int
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// recordRequest counts every handled request by route template.
func (h *httpHandler) recordRequest(c *gin.Context) {
	c.Next()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	h.metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status())
}
