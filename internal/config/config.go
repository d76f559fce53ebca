// Package config loads application configuration from environment
// variables. Every value has a safe default so the service starts with no
// environment at all; anything security sensitive warns (or refuses to
// start in prod) when left on its default.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DefaultJWTSecret is the built-in signing secret. It exists so that local
// development works out of the box; a deployment that still signs tokens
// with it is wide open, which is why Load checks for it explicitly.
const DefaultJWTSecret = "replace_this_with_strong_secret"

// Config holds all runtime configuration. It is constructed once in main
// and passed explicitly to the components that need it, so tests can build
// their own with distinct secrets.
type Config struct {
	Env            string // application environment ("dev", "prod")
	Port           string // HTTP port to listen on
	DBFile         string // path of the JSON store document
	JWTSecret      string // secret used to sign both token kinds
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	QueueEnabled   bool   // whether the order event pipeline is active
}

// Load reads the environment into a Config. Rotating JWT_SECRET invalidates
// every outstanding token; there is no migration path and none is needed.
func Load() Config {
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "5000"),
		DBFile:         envStr("DB_FILE", "db.json"),
		JWTSecret:      envStr("JWT_SECRET", DefaultJWTSecret),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		QueueEnabled:   envBool("QUEUE_ENABLED", true),
	}
	if cfg.JWTSecret == DefaultJWTSecret {
		if cfg.Env == "prod" {
			log.Fatal("JWT_SECRET is still the built-in default; refusing to start in prod")
		}
		log.Print("WARNING: JWT_SECRET is the built-in default; set it before deploying")
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
