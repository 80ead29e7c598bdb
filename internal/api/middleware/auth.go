package middleware

import (
	"context"
	"net/http"

	"inkwell/internal/app/policy"
	"inkwell/internal/common"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// Auth resolves the token subject to a live user record on every request, so
// role changes and deletions take effect on the next call.
type Auth struct {
	users repository.UserRepository
}

func NewAuth(users repository.UserRepository) *Auth {
	return &Auth{users: users}
}

// Required rejects the request with 401 unless a valid token maps to an
// existing user. The router-level jwtauth.Verifier must run before this.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolve(r)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// Optional attaches the user when a valid token is present and proceeds
// anonymously otherwise.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.resolve(r); err == nil {
			r = r.WithContext(withUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a subtree for the given roles. It must be mounted after
// Required so the user is already resolved.
func (a *Auth) RequireRole(allowed policy.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !policy.RoleGate(user.Role, allowed).Allowed() {
				common.RespondWithError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) resolve(r *http.Request) (*model.User, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	user, err := a.users.FindByID(r.Context(), userID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

func withUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user attached by Required or
// Optional, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}
