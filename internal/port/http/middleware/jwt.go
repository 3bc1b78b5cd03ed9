package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth validates the Authorization bearer token with the shared HMAC
// secret and puts the user ID and role into the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				http.Error(w, "authorization header must be a bearer token", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				// Some issuers put the user ID in the standard subject claim.
				userID, _ = claims["sub"].(string)
			}
			if userID == "" {
				http.Error(w, "token carries no user identity", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			if role, ok := claims["role"].(string); ok {
				ctx = context.WithValue(ctx, UserRoleCtxKey, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID placed by JWTAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}
