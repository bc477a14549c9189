package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/terraincognita07/habitfeed/internal/db"
	"gorm.io/gorm"
)

func TestRunImportLegacyPrintsSummary(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "habits.db")
	source, err := gorm.Open(sqlite.Open(sourcePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	for _, statement := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR, surname VARCHAR, nickname VARCHAR, age INTEGER, status VARCHAR, about VARCHAR, email VARCHAR, hashed_password VARCHAR, modified_date DATETIME, city_from VARCHAR, habit VARCHAR)`,
		`CREATE TABLE habits (id INTEGER PRIMARY KEY, creator INTEGER, type VARCHAR, period VARCHAR, about_link VARCHAR, count INTEGER, reposts INTEGER)`,
		`CREATE TABLE news (id INTEGER PRIMARY KEY, user_id INTEGER, title VARCHAR, content VARCHAR, created_date DATETIME, comms VARCHAR)`,
		`CREATE TABLE comments (id INTEGER PRIMARY KEY, user_id INTEGER, content VARCHAR, created_date DATETIME)`,
		`INSERT INTO users (id, nickname, email, hashed_password, habit) VALUES (1, 'alice', 'alice@example.com', 'pbkdf2:sha256:1000$salt$00', '1')`,
		`INSERT INTO habits VALUES (1, 1, 'Run', 'week', '', 0, 0)`,
	} {
		if err := source.Exec(statement).Error; err != nil {
			t.Fatalf("seed legacy db: %v", err)
		}
	}
	if sqlDB, err := source.DB(); err == nil {
		_ = sqlDB.Close()
	}

	target, err := db.OpenSQLite(filepath.Join(t.TempDir(), "habitfeed.db"))
	if err != nil {
		t.Fatalf("open target: %v", err)
	}

	var out bytes.Buffer
	if err := RunImportLegacy(context.Background(), sourcePath, "", target, nil, nil, &out); err != nil {
		t.Fatalf("RunImportLegacy returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 1 users, 1 habits, 1 subscriptions, 0 news, 0 comments (0 links), 0 photos") {
		t.Fatalf("unexpected summary %q", out.String())
	}
}
