// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

// setMinimalEnv sets the variables without which Load refuses to start.
func setMinimalEnv(t *testing.T) {
	t.Helper()
	os.Clearenv()
	setEnv(t, "PVQ_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "PVQ_ADMIN_USERNAME", "admin")
	setEnv(t, "PVQ_ADMIN_PASSWORD", "hunter2-but-longer")
	setEnv(t, "PVQ_MAIL_ENABLED", "false")
	setEnv(t, "PVQ_CHAT_ENABLED", "false")
}

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Store != StoreFile {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreFile)
	}
	if cfg.DataFile != "./data/leads.json" {
		t.Errorf("DataFile = %q, want %q", cfg.DataFile, "./data/leads.json")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.OfferRetention != 168*time.Hour {
		t.Errorf("OfferRetention = %v, want %v", cfg.OfferRetention, 168*time.Hour)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want %q", cfg.OpenAIModel, "gpt-4o-mini")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PVQ_ADMIN_USERNAME", "admin")
	setEnv(t, "PVQ_ADMIN_PASSWORD", "hunter2-but-longer")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when PVQ_SESSION_SECRET is not set")
	}
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for a short session secret")
	}
}

func TestLoad_WeakSessionSecret(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestLoad_MailCredentialsRequired(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_MAIL_ENABLED", "true")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when mail is enabled without credentials")
	}
	if !strings.Contains(err.Error(), "PVQ_MAIL_USERNAME") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}

	setEnv(t, "PVQ_MAIL_USERNAME", "mailer@example.com")
	setEnv(t, "PVQ_MAIL_PASSWORD", "app-password")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when the recipient address is missing")
	}

	setEnv(t, "PVQ_RECIPIENT_EMAIL", "sales@example.com")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error with full mail config: %v", err)
	}
}

func TestLoad_ChatKeyRequired(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_CHAT_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when chat is enabled without an API key")
	}

	setEnv(t, "PVQ_OPENAI_API_KEY", "sk-test")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error with chat key set: %v", err)
	}
}

func TestLoad_AdminCredentialRequired(t *testing.T) {
	setMinimalEnv(t)
	os.Unsetenv("PVQ_ADMIN_PASSWORD")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without an admin password or hash")
	}

	setEnv(t, "PVQ_ADMIN_PASSWORD_HASH", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error with password hash set: %v", err)
	}
}

func TestLoad_InvalidStore(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_STORE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unknown store backends")
	}
}

func TestUseSQLiteStore(t *testing.T) {
	setMinimalEnv(t)
	setEnv(t, "PVQ_STORE", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UseSQLiteStore() {
		t.Error("UseSQLiteStore() = false, want true")
	}
}
