// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Store backend identifiers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"PVQ_SESSION_SECRET,required"`
	ServerHost    string `env:"PVQ_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PVQ_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PVQ_ENV" envDefault:"development"`
	LogLevel      string `env:"PVQ_LOG_LEVEL" envDefault:"info"`

	// Lead storage
	Store    string `env:"PVQ_STORE" envDefault:"file"`    // file|sqlite
	DataFile string `env:"PVQ_DATA_FILE" envDefault:"./data/leads.json"`
	DBPath   string `env:"PVQ_DB_PATH" envDefault:"./data/pvquote.db"`

	// Offer generation
	OffersDir      string        `env:"PVQ_OFFERS_DIR" envDefault:"./data/offers"`
	LogoPath       string        `env:"PVQ_LOGO_PATH" envDefault:"./web/static/logo.png"`
	OfferRetention time.Duration `env:"PVQ_OFFER_RETENTION" envDefault:"168h"`

	// Outbound mail
	MailEnabled  bool   `env:"PVQ_MAIL_ENABLED" envDefault:"true"`
	MailServer   string `env:"PVQ_MAIL_SERVER" envDefault:"smtp.gmail.com"`
	MailPort     int    `env:"PVQ_MAIL_PORT" envDefault:"587"`
	MailUseTLS   bool   `env:"PVQ_MAIL_USE_TLS" envDefault:"true"`
	MailUsername string `env:"PVQ_MAIL_USERNAME"`
	MailPassword string `env:"PVQ_MAIL_PASSWORD"`
	MailTimeout  time.Duration `env:"PVQ_MAIL_TIMEOUT" envDefault:"15s"`

	// RecipientEmail is the admin address that receives a copy of every lead.
	RecipientEmail string `env:"PVQ_RECIPIENT_EMAIL"`

	// AI chat
	ChatEnabled   bool          `env:"PVQ_CHAT_ENABLED" envDefault:"true"`
	OpenAIAPIKey  string        `env:"PVQ_OPENAI_API_KEY"`
	OpenAIModel   string        `env:"PVQ_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ChatTimeout   time.Duration `env:"PVQ_CHAT_TIMEOUT" envDefault:"30s"`

	// Admin credentials. Either the argon2id hash (preferred) or, for
	// development only, the plain password may be set.
	AdminUsername     string `env:"PVQ_ADMIN_USERNAME,required"`
	AdminPassword     string `env:"PVQ_ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"PVQ_ADMIN_PASSWORD_HASH"`

	// GeoIP configuration
	GeoIPDBPath string `env:"PVQ_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseSQLiteStore returns true if the SQLite lead store backend is selected.
func (c Config) UseSQLiteStore() bool {
	return c.Store == StoreSQLite
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PVQ_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PVQ_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("PVQ_STORE must be %q or %q, got %q", StoreFile, StoreSQLite, cfg.Store)
	}

	// Routes that need mail or AI credentials must fail at startup, not
	// mid-request. Each feature can be switched off explicitly instead.
	if cfg.MailEnabled {
		if cfg.MailUsername == "" || cfg.MailPassword == "" {
			return nil, fmt.Errorf("PVQ_MAIL_USERNAME and PVQ_MAIL_PASSWORD are required when mail is enabled; " +
				"set PVQ_MAIL_ENABLED=false to run without outbound mail")
		}
		if cfg.RecipientEmail == "" {
			return nil, fmt.Errorf("PVQ_RECIPIENT_EMAIL is required when mail is enabled")
		}
	}
	if cfg.ChatEnabled && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("PVQ_OPENAI_API_KEY is required when chat is enabled; " +
			"set PVQ_CHAT_ENABLED=false to run without the chatbot")
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("either PVQ_ADMIN_PASSWORD_HASH or PVQ_ADMIN_PASSWORD must be set")
	}
	if cfg.AdminPassword != "" && cfg.AdminPasswordHash == "" && !cfg.IsDevelopment() {
		slog.Warn("PVQ_ADMIN_PASSWORD is set as plain text outside development; " +
			"prefer PVQ_ADMIN_PASSWORD_HASH (argon2id)")
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PVQ_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
