package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultAvatarsSubDir = "avatars"
)

const (
	defaultAvatarSize = 400
	defaultPageSize   = 50
	defaultMaxPage    = 200
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for generated assets (avatars)
	AvatarsPath      string // full-calculated path for avatars

	// avatar processing settings
	AvatarSize int

	// base URL prepended to stored asset paths to form public URLs
	PublicBaseURL string

	// pagination settings for the people listing
	DefaultPageSize int
	MaxPageSize     int

	// admin auth
	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// CORS
	AllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "people.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	avatarsSubDir := getEnvOrDefault("AVATARS_SUBDIR", DefaultAvatarsSubDir)
	absAvatarsPath := filepath.Join(absMediaStorage, avatarsSubDir)

	avatarSize := getEnvIntOrDefault("AVATAR_SIZE", defaultAvatarSize)

	port := getEnvOrDefault("PORT", "8080")
	publicBaseURL := getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:"+port+"/api/media")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Printf("Warning: JWT_SECRET not set, using an insecure development default")
		jwtSecret = "insecure-dev-secret"
	}

	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := Config{
		DatabasePath:     dbPath,
		MediaStoragePath: absMediaStorage,
		AvatarsPath:      absAvatarsPath,
		AvatarSize:       avatarSize,
		PublicBaseURL:    strings.TrimRight(publicBaseURL, "/"),
		DefaultPageSize:  getEnvIntOrDefault("DEFAULT_PAGE_SIZE", defaultPageSize),
		MaxPageSize:      getEnvIntOrDefault("MAX_PAGE_SIZE", defaultMaxPage),
		JWTSecret:        jwtSecret,
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AllowedOrigins:   origins,
	}

	return cfg, nil
}
