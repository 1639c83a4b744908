package session

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	_ "modernc.org/sqlite"
)

func TestNew_CookieSettings(t *testing.T) {
	sm := New(nil, false)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("expected 24h lifetime, got %v", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite Lax, got %v", sm.Cookie.SameSite)
	}
	if !sm.Cookie.Secure {
		t.Error("expected Secure cookie in production")
	}
}

func TestNew_DevelopmentAllowsInsecureCookie(t *testing.T) {
	sm := New(nil, true)

	if sm.Cookie.Secure {
		t.Error("expected non-Secure cookie in development")
	}
}

func TestNew_SQLiteBackedStore(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(`CREATE TABLE sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	)`); err != nil {
		t.Fatalf("creating sessions table: %v", err)
	}

	sm := New(db, true)

	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Errorf("expected sqlite3store backend, got %T", sm.Store)
	}
}
