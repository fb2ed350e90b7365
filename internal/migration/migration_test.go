package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// treeFS places files under the sqlite directory and adds a postgres file
// the sqlite runner must never see.
func treeFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{
		"postgres/001_pg_only.sql": &fstest.MapFile{Data: []byte("CREATE TABLE pg_only (id SERIAL);")},
	}
	for name, content := range files {
		fsys["sqlite/"+name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func newRunner(t *testing.T, db *sql.DB, files map[string]string) *Runner {
	t.Helper()
	r, err := NewRunner(db, treeFS(files), DialectSQLite)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r
}

func TestNewRunner_UnknownDialect(t *testing.T) {
	if _, err := NewRunner(setupTestDB(t), treeFS(nil), Dialect("mysql")); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestDialectBind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{DialectSQLite, "INSERT INTO t (a, b) VALUES (?, ?)"},
		{DialectPostgres, "INSERT INTO t (a, b) VALUES ($1, $2)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			if got := tt.dialect.bind("INSERT INTO t (a, b) VALUES (?, ?)"); got != tt.want {
				t.Errorf("bind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMigrations_ReadsDialectDirectory(t *testing.T) {
	runner := newRunner(t, setupTestDB(t), map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "not a migration",
	})

	migrations, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
}

func TestMigrations_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "no underscore",
			files: map[string]string{"001.sql": "SELECT 1;"},
			want:  "invalid migration filename format",
		},
		{
			name:  "non-numeric version",
			files: map[string]string{"abc_test.sql": "SELECT 1;"},
			want:  "invalid version number",
		},
		{
			name:  "zero version",
			files: map[string]string{"000_test.sql": "SELECT 1;"},
			want:  "version must be at least 1",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_a.sql":  "SELECT 1;",
				"0001_b.sql": "SELECT 1;",
			},
			want: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRunner(t, setupTestDB(t), tt.files).Migrations()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestUp(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, map[string]string{
		"001_create.sql": "CREATE TABLE holidays (date TEXT PRIMARY KEY);",
		"002_seed.sql":   "INSERT INTO holidays (date) VALUES ('2024-01-01');",
	})

	var messages []string
	applied, err := runner.Up(func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 2 || st.Latest != 2 || !st.UpToDate() {
		t.Errorf("unexpected status after Up: %+v", st)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows); err != nil {
		t.Fatalf("failed to count history: %v", err)
	}
	if rows != 2 {
		t.Errorf("expected one history row per migration, got %d", rows)
	}

	var pgOnly int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'pg_only'").Scan(&pgOnly); err != nil {
		t.Fatal(err)
	}
	if pgOnly != 0 {
		t.Error("sqlite runner applied a postgres migration")
	}

	// Second run is a no-op.
	applied, err = runner.Up(nil)
	if err != nil {
		t.Fatalf("second Up failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations applied on second run, got %d", applied)
	}
}

func TestUp_FailureRollsBack(t *testing.T) {
	runner := newRunner(t, setupTestDB(t), map[string]string{
		"001_ok.sql":  "CREATE TABLE a (id INTEGER);",
		"002_bad.sql": "THIS IS NOT SQL;",
	})

	applied, err := runner.Up(nil)
	if err == nil {
		t.Fatal("expected error from invalid migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	current, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", current)
	}
}

func TestStatus_SchemaTooNew(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	})

	if err := runner.Check(); err != nil {
		t.Errorf("expected fresh database to pass, got %v", err)
	}

	if _, err := db.Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (3, 'future', '2030-01-01T00:00:00Z')"); err != nil {
		t.Fatalf("failed to record future migration: %v", err)
	}

	st, err := runner.Status()
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Fatalf("expected ErrSchemaTooNew, got %v", err)
	}
	if st.Current != 3 || st.Latest != 1 {
		t.Errorf("expected versions to be reported, got %+v", st)
	}
	if err := runner.Check(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Check = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.Up(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("expected Up to refuse a newer database, got %v", err)
	}
}

func TestStatus_Pending(t *testing.T) {
	runner := newRunner(t, setupTestDB(t), map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	})

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.UpToDate() || st.Current != 0 || st.Latest != 1 || len(st.Pending) != 1 {
		t.Errorf("unexpected status for fresh database: %+v", st)
	}
}
