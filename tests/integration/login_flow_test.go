package integration_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kamilwozniak/portfolio/backend/internal/auth"
	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"github.com/kamilwozniak/portfolio/backend/internal/database"
	"github.com/kamilwozniak/portfolio/backend/internal/media"
	"github.com/kamilwozniak/portfolio/backend/internal/oauth"
	"github.com/kamilwozniak/portfolio/backend/internal/server"
	"github.com/kamilwozniak/portfolio/backend/internal/users"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	signingSecret = "integration-secret"
	adminEmail    = "owner@example.com"
	frontendURL   = "http://localhost:5173"
	jsonType      = "application/json"
)

// TestGitHubLoginAndContentManagement drives the full path an admin
// takes: OAuth authorization, provider callback against a stubbed
// GitHub, content creation through the admin API, and the public read
// of the published result.
func TestGitHubLoginAndContentManagement(testContext *testing.T) {
	gin.SetMode(gin.TestMode)

	github := newFakeGitHub(testContext)
	defer github.Close()

	provider, err := oauth.NewGitHubProvider(oauth.GitHubConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/login/oauth2/code/github",
		Endpoint: oauth2.Endpoint{
			AuthURL:  github.URL + "/login/oauth/authorize",
			TokenURL: github.URL + "/login/oauth/access_token",
		},
		UserInfoURL: github.URL + "/user",
	})
	if err != nil {
		testContext.Fatalf("failed to build github provider: %v", err)
	}

	db, err := database.OpenSQLite(filepath.Join(testContext.TempDir(), "integration.db"), zap.NewNop())
	if err != nil {
		testContext.Fatalf("failed to open sqlite: %v", err)
	}

	tokens, err := auth.NewTokenCodec(auth.TokenCodecConfig{SigningSecret: []byte(signingSecret)})
	if err != nil {
		testContext.Fatalf("failed to build token codec: %v", err)
	}
	directory := auth.NewAdminDirectory(adminEmail)

	usersService, err := users.NewService(users.ServiceConfig{Database: db, Admins: directory})
	if err != nil {
		testContext.Fatalf("failed to build users service: %v", err)
	}
	contentService, err := content.NewService(content.ServiceConfig{Database: db})
	if err != nil {
		testContext.Fatalf("failed to build content service: %v", err)
	}
	mediaService, err := media.NewService(media.ServiceConfig{
		Database:     db,
		UploadDir:    testContext.TempDir(),
		AllowedTypes: "image/png",
	})
	if err != nil {
		testContext.Fatalf("failed to build media service: %v", err)
	}

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Tokens:         tokens,
		Providers:      oauth.NewRegistry(provider),
		UsersService:   usersService,
		ContentService: contentService,
		MediaService:   mediaService,
		Logger:         zap.NewNop(),
		FrontendURL:    frontendURL,
	})
	if err != nil {
		testContext.Fatalf("failed to build handler: %v", err)
	}

	// Step 1: the authorize endpoint pins the state and points at GitHub.
	authorizeRecorder := httptest.NewRecorder()
	handler.ServeHTTP(authorizeRecorder, httptest.NewRequest(http.MethodGet, "/oauth2/authorization/github", http.NoBody))
	if authorizeRecorder.Code != http.StatusFound {
		testContext.Fatalf("authorize status: got %d, want %d", authorizeRecorder.Code, http.StatusFound)
	}
	stateCookie := cookieNamed(authorizeRecorder, "oauth_state")
	if stateCookie == nil {
		testContext.Fatalf("expected oauth state cookie")
	}

	// Step 2: the callback exchanges the code and mints the session.
	callbackRequest := httptest.NewRequest(http.MethodGet,
		"/login/oauth2/code/github?code=grant-code&state="+stateCookie.Value, http.NoBody)
	callbackRequest.AddCookie(stateCookie)
	callbackRecorder := httptest.NewRecorder()
	handler.ServeHTTP(callbackRecorder, callbackRequest)
	if callbackRecorder.Code != http.StatusFound {
		testContext.Fatalf("callback status: got %d, want %d", callbackRecorder.Code, http.StatusFound)
	}
	if location := callbackRecorder.Header().Get("Location"); location != frontendURL+"/admin" {
		testContext.Fatalf("callback redirect: got %q", location)
	}
	sessionCookie := cookieNamed(callbackRecorder, "auth_token")
	if sessionCookie == nil {
		testContext.Fatalf("expected session cookie after callback")
	}

	// Step 3: the session authorizes a post creation.
	postBody, err := json.Marshal(map[string]any{
		"titleEn":   "Release Notes",
		"titlePl":   "Notatki Wydania",
		"excerptEn": "What shipped",
		"excerptPl": "Co wydano",
		"category":  "professional",
		"published": true,
		"hashtags":  []string{"release"},
	})
	if err != nil {
		testContext.Fatalf("failed to marshal post input: %v", err)
	}
	createRequest := httptest.NewRequest(http.MethodPost, "/api/admin/posts", bytes.NewReader(postBody))
	createRequest.Header.Set("Content-Type", jsonType)
	createRequest.AddCookie(sessionCookie)
	createRecorder := httptest.NewRecorder()
	handler.ServeHTTP(createRecorder, createRequest)
	if createRecorder.Code != http.StatusCreated {
		testContext.Fatalf("create post status: got %d, body: %s", createRecorder.Code, createRecorder.Body.String())
	}

	// Step 4: the published post is visible without any session.
	listRecorder := httptest.NewRecorder()
	handler.ServeHTTP(listRecorder, httptest.NewRequest(http.MethodGet, "/api/posts", http.NoBody))
	if listRecorder.Code != http.StatusOK {
		testContext.Fatalf("public list status: got %d", listRecorder.Code)
	}
	if body := listRecorder.Body.String(); !strings.Contains(body, "Release Notes") {
		testContext.Fatalf("public listing missing created post: %s", body)
	}

	// Step 5: media upload over the same session.
	var uploadBuffer bytes.Buffer
	writer := multipart.NewWriter(&uploadBuffer)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		testContext.Fatalf("failed to build multipart part: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		testContext.Fatalf("failed to write upload body: %v", err)
	}
	if err := writer.Close(); err != nil {
		testContext.Fatalf("failed to close multipart writer: %v", err)
	}
	uploadRequest := httptest.NewRequest(http.MethodPost, "/api/admin/media", &uploadBuffer)
	uploadRequest.Header.Set("Content-Type", writer.FormDataContentType())
	uploadRequest.AddCookie(sessionCookie)
	uploadRecorder := httptest.NewRecorder()
	handler.ServeHTTP(uploadRecorder, uploadRequest)
	if uploadRecorder.Code != http.StatusCreated {
		testContext.Fatalf("upload status: got %d, body: %s", uploadRecorder.Code, uploadRecorder.Body.String())
	}

	// Step 6: logout clears the cookie; the cleared value no longer works.
	logoutRequest := httptest.NewRequest(http.MethodPost, "/api/admin/auth/logout", http.NoBody)
	logoutRequest.AddCookie(sessionCookie)
	logoutRecorder := httptest.NewRecorder()
	handler.ServeHTTP(logoutRecorder, logoutRequest)
	if logoutRecorder.Code != http.StatusOK {
		testContext.Fatalf("logout status: got %d", logoutRecorder.Code)
	}
	cleared := cookieNamed(logoutRecorder, "auth_token")
	if cleared == nil || cleared.Value != "" {
		testContext.Fatalf("expected cleared session cookie, got %+v", cleared)
	}

	unauthed := httptest.NewRequest(http.MethodGet, "/api/admin/posts", http.NoBody)
	unauthed.AddCookie(cleared)
	unauthedRecorder := httptest.NewRecorder()
	handler.ServeHTTP(unauthedRecorder, unauthed)
	if unauthedRecorder.Code != http.StatusUnauthorized {
		testContext.Fatalf("cleared cookie still authorized: got %d", unauthedRecorder.Code)
	}
}

func cookieNamed(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// newFakeGitHub serves the token exchange and user endpoints the
// provider hits during the callback.
func newFakeGitHub(testContext *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonType)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"access_token": "gho_integration",
			"token_type":   "bearer",
		}); err != nil {
			testContext.Errorf("failed to encode token response: %v", err)
		}
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", jsonType)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"id":         12021,
			"login":      "site-owner",
			"name":       "Site Owner",
			"email":      adminEmail,
			"avatar_url": "https://avatars.example/12021",
		}); err != nil {
			testContext.Errorf("failed to encode user response: %v", err)
		}
	})
	return httptest.NewServer(mux)
}
