package database

import (
	"errors"
	"time"

	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationSeedSiteSettings = "2026-08-10_seed_site_settings_row"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationSeedSiteSettings, apply: seedSiteSettingsRow},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// seedSiteSettingsRow guarantees the settings singleton exists so the
// public settings endpoint never serves a 404 on a fresh database.
func seedSiteSettingsRow(db *gorm.DB) error {
	var count int64
	if err := db.Model(&content.SiteSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&content.SiteSettings{ID: 1}).Error
}
