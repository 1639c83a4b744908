package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "modernc.org/sqlite"

	"github.com/olegiv/pvquote-go/internal/model"
	"github.com/olegiv/pvquote-go/internal/offer"
	"github.com/olegiv/pvquote-go/internal/render"
	"github.com/olegiv/pvquote-go/internal/store"
	"github.com/olegiv/pvquote-go/web"
)

// testDB creates an in-memory SQLite database with the leads schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
		CREATE TABLE leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			schema_version INTEGER NOT NULL DEFAULT 1,
			email TEXT NOT NULL,
			address TEXT NOT NULL,
			area TEXT NOT NULL,
			direction TEXT NOT NULL,
			consumption TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ip_address TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

// testLeadStore creates a lead store backed by an in-memory database.
func testLeadStore(t *testing.T) store.LeadStore {
	t.Helper()
	return store.NewSQLiteStoreFromDB(testDB(t))
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer creates a renderer from the embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("failed to sub templates FS: %v", err)
	}
	r, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

// testOfferGenerator creates an offer generator writing into a temp dir.
func testOfferGenerator(t *testing.T) *offer.Generator {
	t.Helper()

	g, err := offer.NewGenerator(t.TempDir(), "")
	if err != nil {
		t.Fatalf("failed to create offer generator: %v", err)
	}
	return g
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// fakeNotifier records notification calls and can simulate failures.
type fakeNotifier struct {
	adminCalls    int
	customerCalls int
	lastPDF       string
	err           error
}

func (f *fakeNotifier) SendAdminNotification(_ context.Context, _ model.Lead, pdfPath string) error {
	f.adminCalls++
	f.lastPDF = pdfPath
	return f.err
}

func (f *fakeNotifier) SendCustomerConfirmation(_ context.Context, _ model.Lead, pdfPath string) error {
	f.customerCalls++
	f.lastPDF = pdfPath
	return f.err
}

// fakeAsker returns a canned answer or error.
type fakeAsker struct {
	answer string
	err    error
}

func (f *fakeAsker) Ask(context.Context, string) (string, error) {
	return f.answer, f.err
}
