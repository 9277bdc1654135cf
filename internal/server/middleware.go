package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamilwozniak/portfolio/backend/internal/auth"
	"go.uber.org/zap"
)

const (
	// sessionCookieName carries the session token between requests.
	sessionCookieName = "auth_token"
	// stateCookieName carries the OAuth anti-forgery state across the
	// provider redirect.
	stateCookieName = "oauth_state"
	stateCookieTTL  = 600

	principalContextKey = "portfolio_principal"
)

// PrincipalFromContext returns the authenticated principal attached by
// the gate, if any.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

// attachPrincipal runs once per request before routing decisions. It
// extracts a candidate token, verifies it, and attaches the principal.
// Missing or invalid tokens pass through unauthenticated: the request
// may well target a public route, and failing here would also hand an
// attacker an oracle for why a forged token was rejected.
func (h *httpHandler) attachPrincipal(c *gin.Context) {
	token := extractToken(c.Request)
	if token == "" || !h.tokens.Verify(token) {
		c.Next()
		return
	}

	if _, attached := PrincipalFromContext(c); attached {
		c.Next()
		return
	}

	email, err := h.tokens.ExtractSubject(token)
	if err != nil {
		c.Next()
		return
	}
	name, _ := h.tokens.ExtractName(token)
	isAdmin, _ := h.tokens.ExtractIsAdmin(token)

	c.Set(principalContextKey, auth.NewPrincipal(email, name, isAdmin))
	c.Next()
}

// requireAdmin guards the admin API group: 401 without a principal,
// 403 for a principal lacking the ADMIN role.
func (h *httpHandler) requireAdmin(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	if !principal.HasRole(auth.RoleAdmin) {
		h.logger.Warn("admin route denied", zap.String("email", principal.Email))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.Next()
}

// extractToken prefers the Authorization header over the session cookie.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie issues the auth cookie. SameSite=Lax is required so
// the cookie survives the cross-site redirect back from the provider.
func (h *httpHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", h.cookieSecure, true)
}

// clearSessionCookie removes the auth cookie with matching attributes.
func (h *httpHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookieSecure, true)
}
