package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "identity", id), ANY package that knows the string
// can read or shadow your value. Using a package-private type prevents
// collisions: only this package can create a key of type contextKey.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the JWT from the auth_token HttpOnly cookie, validates it, and
// stores the caller's Identity in the request context. If the token is
// missing or invalid, it returns 401 Unauthorized and stops the chain.
//
// The two failure bodies are fixed strings: "Unauthorized: No token provided"
// for an absent cookie, "Unauthorized: Invalid token" for everything else
// (bad signature, malformed, expired). Clients learn nothing about why
// verification failed beyond missing-vs-present.
//
// COOKIE-BASED TOKEN STORAGE:
// We store the JWT in an HttpOnly cookie rather than localStorage or a
// header. HttpOnly means JavaScript cannot read it, which prevents
// XSS (Cross-Site Scripting) attacks from stealing the token.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				// http.ErrNoCookie — the client never presented a credential
				unauthorized(w, "Unauthorized: No token provided")
				return
			}

			identity, err := tokens.Validate(cookie.Value)
			if err != nil {
				unauthorized(w, "Unauthorized: Invalid token")
				return
			}

			// Store the identity in the request-scoped context so handlers
			// can read it. Each request gets its own binding — no shared state.
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated caller's Identity from the
// request context.
//
// Returns (nil, false) if the request never passed RequireAuth.
//
// Usage in handlers:
//
//	identity, ok := auth.IdentityFromContext(r.Context())
//	if !ok {
//	    // unauthenticated
//	}
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

// unauthorized writes a 401 with the standard {"error": ...} body.
// The handler package has its own response helpers; this middleware can't
// import them without an import cycle, so it encodes the one shape it needs.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
