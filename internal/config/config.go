package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig bundles everything the server needs at startup.
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabasePath   string
	SessionSecret  string
	GinMode        string
	UploadDir      string
	UploadURLPath  string
	SiteBaseURL    string
	AdminUserName  string
	AdminPassword  string
	CacheEnabled   bool
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 5 << 20

// Load reads the application configuration from environment variables,
// falling back to safe defaults for anything missing.
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "sitekit.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "sitekit-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/media"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:" + port
	}

	// Reads bypass the cache entirely when disabled; meant for local
	// editing loops, never for production.
	cacheEnabled := true
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CACHE_ENABLED"))) {
	case "0", "false", "no", "off":
		cacheEnabled = false
	}

	adminUserName := strings.TrimSpace(os.Getenv("ADMIN_USER_NAME"))
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabasePath:   databasePath,
		SessionSecret:  sessionSecret,
		GinMode:        ginMode,
		UploadDir:      uploadDir,
		UploadURLPath:  uploadURLPath,
		SiteBaseURL:    siteBaseURL,
		AdminUserName:  adminUserName,
		AdminPassword:  adminPassword,
		CacheEnabled:   cacheEnabled,
		MaxUploadBytes: defaultMaxUploadBytes,
	}
}
