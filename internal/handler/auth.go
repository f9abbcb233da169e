package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/docvault/internal/auth"
	"github.com/sakif/docvault/internal/service"
)

// AuthHandler manages registration, login, and session cookies.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister  → create an account, issue the first session token
//   - HandleLogin     → verify credentials, issue a session token
//   - HandleProtected → prove to the client that its session is valid
//   - HandleLogout    → clear the session cookie
//
// The handler owns the HTTP concerns (JSON bodies, cookies, status codes);
// the AuthService owns the rules.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authSvc,
		logger: logger,
	}
}

// credentialsRequest is the body for both register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the success body for register, login, and protected.
type authResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /auth/register
// REQUEST BODY: {"username": "alice", "password": "secret1"}
//
// 400 on short username/password, 409 if the username is taken. On success
// the response carries the new userId and the session cookie is set, so the
// client is logged in immediately.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User registered",
		UserID:  result.User.ID,
	})
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /auth/login
//
// Every failed login — unknown user or wrong password — produces the same
// 401 {"error":"Invalid credentials"}. The service guarantees that; this
// handler just forwards whatever it returns.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Logged in",
		UserID:  result.User.ID,
	})
}

// HandleProtected echoes the authenticated caller's userId.
//
// HTTP: GET /auth/protected
// Auth: Required (RequireAuth middleware sets the Identity in context)
//
// Clients use this to check session state on load without touching any data.
func (h *AuthHandler) HandleProtected(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Protected route accessed",
		UserID:  identity.UserID,
	})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /auth/logout
//
// Sessions are stateless JWTs, so "logout" just deletes the client-side
// cookie. The token itself remains valid until its expiry — there is no
// server-side revocation list.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// setSessionCookie attaches the token as the session cookie.
//
// HttpOnly = JavaScript cannot read it (XSS protection).
// SameSite=Strict = never sent on cross-site requests (CSRF protection).
// MaxAge matches the token's own lifetime, so the browser drops the cookie
// around the same time the token stops verifying.
// Secure should be enabled behind HTTPS in production.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // tells the browser to delete the cookie immediately
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
