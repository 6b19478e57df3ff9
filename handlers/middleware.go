package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vasudha-connect/kinshipbackend/repository"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// AdminContextKey is the key used to store the admin object in the request context.
	AdminContextKey ContextKey = "admin"
)

// AuthMiddleware verifies the bearer token and, if valid, fetches the admin
// named by the token subject and adds them to the request context.
func AuthMiddleware(adminRepo repository.AdminRepositoryInterface, jwtSecret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		admin, err := adminRepo.GetByUsername(claims.Subject)
		if err != nil {
			// the admin may have been removed after the token was issued
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Admin not found")
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
