// Package config reads the configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the runtime configuration of the backend.
type Config struct {
	Port        string
	APIURL      *url.URL
	DataDir     string
	DatabaseDSN string // SQLite file, used when Postgres is not configured
	Postgres    Postgres

	JWTSecret string
	JWTExpiry time.Duration

	SMTP SMTP

	CookieSecure bool
	CORSOrigins  []string
	EnablePprof  bool
}

// Postgres holds the connection parameters for PostgreSQL.
type Postgres struct {
	Host     string
	User     string
	Password string
	Name     string
}

// Enabled reports whether PostgreSQL is used instead of SQLite.
func (p Postgres) Enabled() bool {
	return p.Host != ""
}

// SMTP holds the parameters for sending mail.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether mail is delivered over SMTP.
func (s SMTP) Enabled() bool {
	return s.Host != ""
}

// Load reads a .env file from the working directory if there is one and
// builds the configuration from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	} else if err == nil {
		log.Debug().Str("file", ".env").Msg("Config")
	}

	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	var errs []error

	apiURL, err := url.Parse(getenv("API_URL", "http://localhost:8080"))
	if err != nil {
		errs = append(errs, fmt.Errorf("API_URL is not a valid URL: %w", err))
	} else if apiURL.Scheme == "" || apiURL.Host == "" {
		errs = append(errs, errors.New("API_URL must be an absolute URL"))
	}

	expiry, err := time.ParseDuration(getenv("JWT_EXPIRY", "24h"))
	if err != nil {
		errs = append(errs, fmt.Errorf("JWT_EXPIRY is not a valid duration: %w", err))
	}

	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SMTP_PORT is not a number: %w", err))
	}

	c := Config{
		Port:        getenv("PORT", "8080"),
		APIURL:      apiURL,
		DataDir:     getenv("DATA_DIR", "data"),
		DatabaseDSN: getenv("DATABASE_PATH", "data/cycle-ledger.db"),
		Postgres: Postgres{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: expiry,
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenv("SMTP_FROM", "no-reply@localhost"),
		},
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		CORSOrigins:  strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:  os.Getenv("ENABLE_PPROF") == "true",
	}

	errs = append(errs, c.Validate())
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks values that do not depend on parsing.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}

	if c.JWTExpiry < 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must not be negative"))
	}

	if c.Postgres.Enabled() && (c.Postgres.User == "" || c.Postgres.Name == "") {
		errs = append(errs, errors.New("DB_USER and DB_NAME must be set when DB_HOST is set"))
	}

	if c.SMTP.Enabled() && (c.SMTP.Port < 1 || c.SMTP.Port > 65535) {
		errs = append(errs, fmt.Errorf("SMTP_PORT %d is out of range", c.SMTP.Port))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
