package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/httpx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

type guardCtxKey struct{}

type principal struct {
	User  domain.User
	Perms domain.Permissions
}

// CurrentUser returns the resolved, non-deleted, active principal placed in
// the context by RequireUser.
func CurrentUser(ctx context.Context) (domain.User, domain.Permissions, bool) {
	p, ok := ctx.Value(guardCtxKey{}).(principal)
	return p.User, p.Perms, ok
}

// RequireUser resolves the verified token subject to a live account and
// enforces the active gate. It always re-reads current state from the store,
// so a soft-delete or deactivation takes effect on the very next request.
// Soft-deleted subjects are rejected exactly like never-existed ones; an
// already-issued token for a deleted account stops working here.
func RequireUser(st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subject, ok := httpx.SubjectFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized,
					"unauthenticated", "Could not validate credentials")
				return
			}

			u, err := st.Users().GetUserByUsername(ctx, subject)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					slogx.FromContext(ctx).Error("principal resolution failed", "error", err)
				}
				httpx.WriteError(w, http.StatusUnauthorized,
					"unauthenticated", "Could not validate credentials")
				return
			}

			if !u.IsActive {
				httpx.WriteError(w, http.StatusBadRequest,
					"inactive_account", "Inactive user")
				return
			}

			ctx = context.WithValue(ctx, guardCtxKey{}, principal{
				User:  u,
				Perms: domain.ResolvePermissions(u),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner gates owner-only operations. Must run after RequireUser.
func RequireOwner() httpx.Middleware {
	return requirePermission(func(p domain.Permissions) bool { return p.Owner },
		"Not enough permissions. Owner role required.")
}

// RequireAdmin gates the data-management surface. Must run after RequireUser.
func RequireAdmin() httpx.Middleware {
	return requirePermission(func(p domain.Permissions) bool { return p.Admin },
		"Not enough permissions")
}

func requirePermission(allowed func(domain.Permissions) bool, desc string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, perms, ok := CurrentUser(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized,
					"unauthenticated", "Could not validate credentials")
				return
			}
			if !allowed(perms) {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", desc)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
