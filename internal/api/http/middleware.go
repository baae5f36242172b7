package http

import (
	"context"
	"net/http"

	"homywork-server/internal/domain"
	"homywork-server/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware resolves the session cookie to a user and stores it on the
// request context. The role always comes from the database read, never from
// the token, so role changes take effect on the next request.
type AuthMiddleware struct {
	authSvc    service.AuthService
	cookieName string
}

func NewAuthMiddleware(authSvc service.AuthService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authSvc:    authSvc,
		cookieName: cookieName,
	}
}

// Authenticate attaches the session user to the context when a valid session
// cookie is present. Requests without a session pass through anonymously;
// RequireAuth decides whether that is acceptable per route.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authSvc.GetSessionUser(r.Context(), cookie.Value)
		if err != nil {
			// Stale or forged cookie; treat as anonymous.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r) == nil {
			respondError(w, domain.ErrUnauthenticated)
			return
		}
		next(w, r)
	}
}

// RequireRole rejects requests from users outside the given roles.
func RequireRole(next http.HandlerFunc, roles ...domain.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		if user == nil {
			respondError(w, domain.ErrUnauthenticated)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				next(w, r)
				return
			}
		}
		respondError(w, domain.ErrForbidden)
	}
}

// userFrom returns the authenticated user, or nil for anonymous requests.
func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
