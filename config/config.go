package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"https://gadget-store-lilac.vercel.app",
	"https://gadget-store-git-master-theonlyceos-projects.vercel.app",
	"https://gadget-store-q6pkb44wx-theonlyceos-projects.vercel.app",
}

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	CORSOrigins      []string
	LogLevel         string
	PasswordEncoding string
	QueryTimeout     time.Duration
	GinMode          string
}

// LoadEnv reads .env into the process environment. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded (%v), using system environment", err)
	}
}

func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds the Config from the environment. LoadEnv should run first.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             GetEnv("PORT", "3000"),
		MongoURI:         os.Getenv("MONGODB_URI"),
		DBName:           GetEnv("DB_NAME", "appWorldGadget"),
		CORSOrigins:      CSV(os.Getenv("CORS_ORIGINS")),
		LogLevel:         strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		PasswordEncoding: strings.ToLower(GetEnv("PASSWORD_ENCODING", "base64")),
		GinMode:          GetEnv("GIN_MODE", "release"),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = append([]string(nil), defaultOrigins...)
	}

	var errs []error
	if cfg.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unsupported value %q", cfg.LogLevel))
	}

	switch cfg.PasswordEncoding {
	case "base64", "bcrypt":
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_ENCODING: unsupported value %q", cfg.PasswordEncoding))
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE: unsupported value %q", cfg.GinMode))
	}

	timeout, err := time.ParseDuration(GetEnv("MONGO_QUERY_TIMEOUT", "5s"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("MONGO_QUERY_TIMEOUT: %w", err))
	case timeout < 0:
		errs = append(errs, errors.New("MONGO_QUERY_TIMEOUT must not be negative"))
	default:
		cfg.QueryTimeout = timeout
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CSV splits a comma separated value, dropping blanks.
func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
