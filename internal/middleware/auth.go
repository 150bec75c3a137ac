package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserIDCtxKey   = contextKey("user_id")
	UsernameCtxKey = contextKey("username")
)

// LoginPath is where unauthenticated callers are sent. The original
// return path travels in the "next" query parameter.
const LoginPath = "/auth/login"

// JWTAuth guards write routes. A missing or invalid token does not get a
// bare 401: the caller is redirected into the login flow with a return
// path, so the submission can be retried after authenticating.
func JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, username, ok := principalFromRequest(r)
		if !ok {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), userID, username)))
	})
}

// OptionalJWTAuth attaches the principal to the context when a valid
// token is present and passes the request through untouched otherwise.
// Public read pages use it to personalize output without forcing a
// login.
func OptionalJWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, username, ok := principalFromRequest(r); ok {
			r = r.WithContext(withPrincipal(r.Context(), userID, username))
		}
		next.ServeHTTP(w, r)
	})
}

// principalFromRequest parses the Bearer token and returns the claims it
// carries. ok is false for missing, malformed or unverifiable tokens.
func principalFromRequest(r *http.Request) (userID, username string, ok bool) {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}

	userID, ok = claims["user_id"].(string)
	if !ok {
		return "", "", false
	}
	username, _ = claims["username"].(string)
	return userID, username, true
}

func withPrincipal(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UsernameCtxKey, username)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPath+"?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
}

// UserIDFromContext extracts the authenticated principal's id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok
}

// UsernameFromContext extracts the authenticated principal's username.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UsernameCtxKey).(string)
	return name, ok
}
