package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/docvault/internal/auth"
	"github.com/sakif/docvault/internal/handler"
	sqliteRepo "github.com/sakif/docvault/internal/repository/sqlite"
	"github.com/sakif/docvault/internal/service"
)

// newTestRouter wires the real stack — handlers, services, auth middleware,
// in-memory SQLite — onto a chi router with the same route table as the
// server. Only the bcrypt cost differs (minimum, for speed).
func newTestRouter(t *testing.T) (*chi.Mux, *auth.TokenService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	authService := service.NewAuthService(db, tokens, auth.NewPasswordServiceForTest(bcrypt.MinCost), logger)
	authHandler := handler.NewAuthHandler(authService, logger)

	documentService := service.NewDocumentService(db, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)

	requireAuth := auth.RequireAuth(tokens)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/protected", authHandler.HandleProtected)
	})
	r.Route("/docs", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", documentHandler.HandleCreate)
		r.Get("/", documentHandler.HandleList)
		r.Get("/{id}", documentHandler.HandleGet)
		r.Put("/{id}", documentHandler.HandleUpdate)
		r.Delete("/{id}", documentHandler.HandleDelete)
	})

	return r, tokens
}

// doRequest runs one request through the router. A nil cookie means an
// unauthenticated request.
func doRequest(t *testing.T, router *chi.Mux, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// registerUser registers a fresh account and returns its session cookie and
// user ID for use in document tests.
func registerUser(t *testing.T, router *chi.Mux, username, password string) (*http.Cookie, int64) {
	t.Helper()

	rr := doRequest(t, router, http.MethodPost, "/auth/register",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %q failed: status %d, body %s", username, rr.Code, rr.Body.String())
	}

	var resp struct {
		UserID int64 `json:"userId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}

	cookie := sessionCookie(rr)
	if cookie == nil {
		t.Fatalf("register %q did not set the session cookie", username)
	}
	return cookie, resp.UserID
}

// sessionCookie extracts the auth_token cookie from a response, or nil.
func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}
