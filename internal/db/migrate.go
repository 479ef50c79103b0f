package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const versionTimeFormat = "20060102150405"

func newMigrate(migrationsDir, databaseURL string) (*migrate.Migrate, error) {
	abs, err := filepath.Abs(migrationsDir)
	if err != nil {
		return nil, err
	}
	return migrate.New("file://"+filepath.ToSlash(abs), databaseURL)
}

// MigrateUp applies every pending migration. An up-to-date schema is not an error.
func MigrateUp(migrationsDir, databaseURL string) error {
	m, err := newMigrate(migrationsDir, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("No change in migration")
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("Migrated up")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(migrationsDir, databaseURL string, steps int) error {
	m, err := newMigrate(migrationsDir, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// CreateMigration writes an empty up/down pair named by timestamp and returns their paths.
func CreateMigration(migrationsDir, name string, now time.Time) (string, string, error) {
	version := now.Format(versionTimeFormat)
	up := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.up.sql", version, name))
	down := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.down.sql", version, name))

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(up, []byte{}, 0o644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(down, []byte{}, 0o644); err != nil {
		return "", "", err
	}
	return up, down, nil
}
