package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/forum/internal/domain"
)

type JwtDecoder interface {
	DecodeUser(jwtStr string) (*domain.User, error)
}

// Key to store the user in the request context
type key int

const userKey key = 0

const AccessTokenCookie = "accessToken"

// Auth resolves the signed-in user from the access token.
// Guests hitting protected routes are redirected to the login page.
type Auth struct {
	jwt           JwtDecoder
	loginPath     string
	secureCookies bool
}

func NewAuth(jwt JwtDecoder, loginPath string, secureCookies bool) *Auth {
	return &Auth{jwt: jwt, loginPath: loginPath, secureCookies: secureCookies}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := a.extractUser(r)
			if !ok {
				if _, err := r.Cookie(AccessTokenCookie); err == nil {
					// stale or forged cookie, drop it so the login page starts clean
					ClearAccessToken(w, a.secureCookies)
				}
				http.Redirect(w, r, a.loginPath, http.StatusFound)
				return
			}

			if adminOnly && !user.Admin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func (a *Auth) extractUser(r *http.Request) (*domain.User, bool) {
	var tokenString string
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, false
	}

	user, err := a.jwt.DecodeUser(tokenString)
	if err != nil {
		return nil, false
	}
	return user, true
}

func SetAccessToken(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    token,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearAccessToken(w http.ResponseWriter, secure bool) {
	SetAccessToken(w, "", -1, secure)
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user placed by the auth middleware, nil for guests
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
