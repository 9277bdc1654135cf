package database

import (
	"path/filepath"
	"testing"

	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"github.com/kamilwozniak/portfolio/backend/internal/users"
)

func TestOpenSQLiteMigratesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	db, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	for _, table := range []string{"users", "posts", "experiences", "skill_categories", "soft_skills", "site_settings", "media", "db_migrations"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	var user users.User
	if err := db.Where("email = ?", "nobody@example.com").First(&user).Error; err == nil {
		t.Fatalf("expected empty users table")
	}
}

func TestOpenSQLiteSeedsSettingsSingleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	db, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	var settings content.SiteSettings
	if err := db.Where("id = ?", 1).First(&settings).Error; err != nil {
		t.Fatalf("expected seeded settings row: %v", err)
	}

	var migrations int64
	if err := db.Table("db_migrations").Count(&migrations).Error; err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if migrations == 0 {
		t.Fatalf("expected migration record to be written")
	}
}

func TestOpenSQLiteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	first, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	sqlDB, err := first.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	second, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	var count int64
	if err := second.Model(&content.SiteSettings{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected settings seed to run once, got %d rows", count)
	}
}
