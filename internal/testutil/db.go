package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// OpenTestDB opens a throwaway SQLite database configured like production
// (WAL journal, immediate write transactions) and applies the SQL scripts
// from the migrations directory.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stargate_test.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000&_txlock=immediate")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlDir := migrationsDir()
	files, err := os.ReadDir(sqlDir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".sql" {
			continue
		}
		sqlContent, err := os.ReadFile(filepath.Join(sqlDir, file.Name()))
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", file.Name(), err)
		}
		if _, err := db.Exec(string(sqlContent)); err != nil {
			t.Fatalf("failed to execute migration %s: %v", file.Name(), err)
		}
	}

	return db
}

// migrationsDir resolves the migrations directory relative to this file, so
// tests in any package find it regardless of their working directory.
func migrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")
}
