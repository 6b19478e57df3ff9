package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
)

const jwtExpirationHours = 24

type AuthHandler struct {
	AdminRepo repository.AdminRepositoryInterface
	JWTSecret []byte
}

func NewAuthHandler(adminRepo repository.AdminRepositoryInterface, jwtSecret string) *AuthHandler {
	return &AuthHandler{AdminRepo: adminRepo, JWTSecret: []byte(jwtSecret)}
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	Admin     models.Admin `json:"admin"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request payload")
		return
	}

	admin, err := h.AdminRepo.GetByUsername(payload.Username)
	if err != nil {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid username or password")
		return
	}

	if !admin.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid username or password")
		return
	}

	expirationTime := time.Now().Add(jwtExpirationHours * time.Hour)
	claims := &jwt.RegisteredClaims{
		Subject:   admin.Username,
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "kinshipbackend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "token_failure", "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		Admin:     *admin,
		ExpiresAt: expirationTime,
	})
}
