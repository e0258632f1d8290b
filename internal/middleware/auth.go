package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aferrandez/liga-veteranos/internal/httputil"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const UserKey ContextKey = "user"

// Auth resolves bearer tokens to users. Tokens are signed HS256 with the
// user id as subject; there is no session state on the server.
type Auth struct {
	secret []byte
	users  *store.UserStore
}

func NewAuth(secret string, users *store.UserStore) *Auth {
	return &Auth{secret: []byte(secret), users: users}
}

// RequireUser rejects requests without a valid bearer token and puts the
// resolved user on the request context.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			httputil.Unauthorized(w, "Missing bearer token")
			return
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			httputil.Unauthorized(w, "Invalid authentication credentials")
			return
		}

		user, err := a.users.GetUser(r.Context(), claims.Subject)
		if err != nil {
			httputil.Unauthorized(w, "Invalid authentication credentials")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route on the admin role. Must run inside RequireUser.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetAuthenticatedUser(r.Context())
		if user == nil {
			httputil.Unauthorized(w, "Missing bearer token")
			return
		}
		if user.Role != league.RoleAdmin {
			httputil.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAuthenticatedUser(ctx context.Context) *league.User {
	val := ctx.Value(UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*league.User)
	if !ok {
		return nil
	}
	return user
}
