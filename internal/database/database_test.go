package database

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"cashflow/internal/models"
)

func TestConfigURLs(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "cashflow", SSLMode: "disable"}

	if got := cfg.DSN(); got != "host=db port=5432 user=u password=p dbname=cashflow sslmode=disable" {
		t.Errorf("unexpected DSN %q", got)
	}
	if got := cfg.URL(); got != "postgres://u:p@db:5432/cashflow?sslmode=disable" {
		t.Errorf("unexpected URL %q", got)
	}
}

func TestNewManager_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashflow.db")
	m, err := NewManager(&Config{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	for _, table := range []string{models.CollectionTransactions, models.CollectionTransactionTypes} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %q", table)
		}
	}
}

func TestNewManager_UnknownDriver(t *testing.T) {
	if _, err := NewManager(&Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read migrations: %v", err)
	}
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("expected paired migrations, got %d up and %d down", ups, downs)
	}
}
