package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamilwozniak/portfolio/backend/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// handleAuthorize starts the federated login: it pins an anti-forgery
// state in a short-lived cookie and redirects to the provider.
func (h *httpHandler) handleAuthorize(c *gin.Context) {
	providerName := c.Param("provider")
	provider, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_provider"})
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieTTL, "/", "", h.cookieSecure, true)

	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// handleCallback finishes the federated login. The flow is a single
// pass: exchange, upsert, admin check, token, cookie, redirect. A
// non-admin identity is a terminal rejection for this request, not an
// error; the provider callback cycle must start over.
func (h *httpHandler) handleCallback(c *gin.Context) {
	providerName := c.Param("provider")
	provider, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_provider"})
		return
	}

	if !h.consumeStateCookie(c) {
		h.logger.Warn("oauth state mismatch", zap.String("provider", providerName))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeProviderError)
		h.redirectLoginError(c, "login_failed")
		return
	}

	code := c.Query("code")
	if code == "" || c.Query("error") != "" {
		h.logger.Warn("oauth callback without code",
			zap.String("provider", providerName),
			zap.String("provider_error", c.Query("error")))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeProviderError)
		h.redirectLoginError(c, "login_failed")
		return
	}

	profile, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("oauth exchange failed", zap.String("provider", providerName), zap.Error(err))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeProviderError)
		h.redirectLoginError(c, "login_failed")
		return
	}

	user, err := h.users.Upsert(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("user upsert failed", zap.String("provider", providerName), zap.Error(err))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeStorageError)
		h.redirectLoginError(c, "login_failed")
		return
	}

	if !user.IsAdmin {
		h.logger.Warn("login rejected for non-admin",
			zap.String("provider", providerName),
			zap.String("email", user.Email))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeNotAdmin)
		h.redirectLoginError(c, "not_authorized")
		return
	}

	token, err := h.tokens.Issue(user.Email, user.Name, user.IsAdmin)
	if err != nil {
		h.logger.Error("token issuance failed", zap.Error(err))
		h.metrics.RecordLogin(providerName, metrics.LoginOutcomeStorageError)
		h.redirectLoginError(c, "login_failed")
		return
	}

	h.setSessionCookie(c, token, h.cookieMaxAge)
	h.metrics.RecordLogin(providerName, metrics.LoginOutcomeSuccess)
	h.logger.Info("admin login", zap.String("provider", providerName), zap.String("email", user.Email))
	c.Redirect(http.StatusFound, h.frontendURL+"/admin")
}

// handleLogout clears the session cookie. The token itself stays valid
// until expiry; there is no server-side revocation.
func (h *httpHandler) handleLogout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// handleCurrentUser returns the stored user behind the principal.
func (h *httpHandler) handleCurrentUser(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	user, err := h.users.FindByEmail(c.Request.Context(), principal.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		h.logger.Error("current user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup_failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// consumeStateCookie validates and clears the anti-forgery state.
func (h *httpHandler) consumeStateCookie(c *gin.Context) bool {
	expected, err := c.Cookie(stateCookieName)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, "", -1, "/", "", h.cookieSecure, true)
	if err != nil || expected == "" {
		return false
	}
	return c.Query("state") == expected
}

func (h *httpHandler) redirectLoginError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.frontendURL+"/admin/login?error="+reason)
}
