package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port    string
	Backend string // "file", "mongo" or "sqlite"

	// file backend
	DataDir string

	// sqlite backend
	SQLitePath string

	// mongo backend
	MongoURI string
	MongoDB  string

	UploadDir string

	SessionKey   []byte
	CSRFKey      []byte
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		Backend:      getEnv("STORAGE_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLitePath:   getEnv("SQLITE_PATH", "./laptopgalaxy.db"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "laptopgalaxy"),
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	switch cfg.Backend {
	case "file", "mongo", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (want file, mongo or sqlite)", cfg.Backend)
	}

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "3000"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating a throwaway
// one when it is missing or too short. Generated keys change on restart, so
// admin sessions do not survive a redeploy unless the key is pinned.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn("environment variable not set, generating a random key for development", "var", envVar)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("key is invalid or too short (min 32 bytes), generating a random key for development", "var", envVar)
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for key material
		panic("config: unable to read random bytes: " + err.Error())
	}
	return b
}
