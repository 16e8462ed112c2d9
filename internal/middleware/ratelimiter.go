package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/itchan-dev/forum/internal/middleware/ratelimiter"
	"github.com/itchan-dev/forum/internal/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return rateLimit(rl, getIdentity, false)
}

// RateLimitAccepted only charges requests that were not rejected with a 4xx,
// so a create that fails validation can be retried right away.
func RateLimitAccepted(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return rateLimit(rl, getIdentity, true)
}

func rateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error), refundRejected bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil && user.Admin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			if !refundRejected {
				next.ServeHTTP(w, r)
				return
			}
			ww := chi_middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if status := ww.Status(); status >= 400 && status < 500 {
				rl.Refund(identity)
			}
		})
	}
}

// Possible if user was authorized with previous middleware
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("Can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// GetIP prefers the proxy headers X-Real-IP and X-Forwarded-For over RemoteAddr.
func GetIP(r *http.Request) (string, error) {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip, nil
	}
	for _, ip := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip = strings.TrimSpace(ip); net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
