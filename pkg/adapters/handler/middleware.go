package handler

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const sessionCookie = "auth_token"

type ctxKey int

const accountIDKey ctxKey = iota

// AccountID returns the authenticated account id, or "" outside AuthMiddleware.
func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(accountIDKey).(string)
	return id
}

func withAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

type Middleware struct {
	jwtSecret []byte
	limiter   ports.RateLimiter // nil disables rate limiting
	log       *logging.Log
}

func NewMiddleware(cfg *config.Config, limiter ports.RateLimiter, log *logging.Log) *Middleware {
	return &Middleware{
		jwtSecret: []byte(cfg.JWTSecret),
		limiter:   limiter,
		log:       log.WithEntryName("HTTP"),
	}
}

// IssueToken signs a session token whose subject is the account id.
func IssueToken(secret []byte, accountID string, ttl time.Duration) (string, time.Time, error) {
	expires := time.Now().Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return token, expires, err
}

// AuthMiddleware accepts the session cookie or an Authorization: Bearer token.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				tokenString = cookie.Value
			}
		}
		if tokenString == "" {
			respondMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return m.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.Subject == "" {
			respondMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(withAccountID(r.Context(), claims.Subject)))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RateLimit counts requests per client IP. Limiter failures let the request through.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := m.limiter.Allow(r.Context(), "ip:"+clientIP(r))
		if err != nil {
			m.log.WithRequest(r.Context()).WithErr(err).Warn("rate limit check failed")
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(m.limiter.Window().Seconds())))
			respondMessage(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AccessLog writes one line per request once the response is done.
func (m *Middleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := m.log.WithRequest(r.Context()).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", status).
			WithField("bytes", ww.BytesWritten()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("remote", clientIP(r))
		if status >= http.StatusInternalServerError {
			entry.Warn("request")
			return
		}
		entry.Info("request")
	})
}

// clientIP strips the port from RemoteAddr, which RealIP may already have rewritten.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
