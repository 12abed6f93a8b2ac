package gorm

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration is a row of the schema_migrations table
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Version   string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName pins the table name
func (Migration) TableName() string {
	return "schema_migrations"
}

// MigrationFunc is a function that performs a migration
type MigrationFunc func(*gorm.DB) error

// MigrationEntry represents a single migration
type MigrationEntry struct {
	Version string
	Name    string
	Up      MigrationFunc
}

// Migrator applies the catalog schema in version order
type Migrator struct {
	db         *gorm.DB
	migrations []MigrationEntry
	logger     *zap.Logger
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *gorm.DB, logger *zap.Logger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: allMigrations(),
		logger:     logger.Named("migrator"),
	}
}

// Migrate runs all pending migrations, each in its own transaction
func (m *Migrator) Migrate() error {
	pending, err := m.Pending()
	if err != nil {
		return err
	}

	for _, migration := range pending {
		m.logger.Info("running migration",
			zap.String("version", migration.Version),
			zap.String("name", migration.Name))

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{
				Version:   migration.Version,
				Name:      migration.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Version, err)
		}
	}
	return nil
}

// Applied returns the recorded migrations, newest first
func (m *Migrator) Applied() ([]Migration, error) {
	if err := m.db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	var applied []Migration
	if err := m.db.Order("applied_at DESC, version DESC").Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return applied, nil
}

// Pending returns the migrations not yet applied, oldest first
func (m *Migrator) Pending() ([]MigrationEntry, error) {
	applied, err := m.Applied()
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	var pending []MigrationEntry
	for _, migration := range m.migrations {
		if !done[migration.Version] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func allMigrations() []MigrationEntry {
	return []MigrationEntry{
		{
			Version: "20250101_001",
			Name:    "Create media_records",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&MediaRecordModel{})
			},
		},
		{
			Version: "20250101_002",
			Name:    "Index media_records listing order",
			Up: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_media_records_created_name ON media_records (created_at, name)").Error
			},
		},
	}
}
