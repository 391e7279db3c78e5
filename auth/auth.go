package auth

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/storyverse/server/logging"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Middleware verifies a "Bearer <id token>" Authorization header and packs
// the token into the request context. Requests without the header pass
// through anonymously; handlers decide whether that is allowed.
func Middleware(client TokenVerifier, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(t) != 2 || !strings.EqualFold(t[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			token, err := client.VerifyIDToken(r.Context(), strings.TrimSpace(t[1]))
			if err != nil {
				log.Warn(r.Context(), "invalid id token", "error", err)
				http.Error(w, "Invalid token", http.StatusForbidden)
				return
			}

			log.Debug(r.Context(), "verified id token", "uid", token.UID)

			// put it in context
			ctx := context.WithValue(r.Context(), userCtxKey, token)

			// and call the next with our new context
			r = r.WithContext(ctx)
			next.ServeHTTP(w, r)
		})
	}
}

// ForContext finds the user from the context. REQUIRES Middleware to have run.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(userCtxKey).(*auth.Token)
	return raw
}

// WithUser returns ctx carrying a token for uid, bypassing verification.
// Used when authentication is disabled for local development.
func WithUser(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userCtxKey, &auth.Token{UID: uid, Subject: uid})
}

// Owns reports whether the request context belongs to userID.
func Owns(ctx context.Context, userID string) bool {
	token := ForContext(ctx)
	return token != nil && userID != "" && token.UID == userID
}
