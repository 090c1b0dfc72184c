package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and injects the subject into the
// request context. A missing or malformed Authorization header is rejected
// exactly like an invalid token; the response never says which it was.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeUnauthenticated(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed")
				writeUnauthenticated(w)
				return
			}

			ctx = context.WithValue(ctx, CtxKeySubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// RFC 6750-style bearer rejection, deliberately detail-free.
func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", "Could not validate credentials")
}
