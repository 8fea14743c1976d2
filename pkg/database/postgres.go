package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the connection and returns the handle. Migration and
// seeding are the caller's job; no package-level state is kept.
func NewDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		// Map driver unique-violation errors onto gorm.ErrDuplicatedKey so
		// services can translate races on unique indexes into conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
