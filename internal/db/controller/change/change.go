// Package change stores and reads the RRset change journal.
package change

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/models"
)

const (
	zoneQueryPattern = "zone = ?"

	// DefaultLimit caps List when no limit is given.
	DefaultLimit = 50
)

var (
	// ErrChangeNotFound is returned when a journal entry is not found.
	ErrChangeNotFound = errors.New("change not found")
	// ErrZoneEmpty is returned when a change or query has no zone.
	ErrZoneEmpty = errors.New("zone cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create appends a change to the journal.
func Create(db *gorm.DB, change *models.Change) error {
	if db == nil {
		return ErrDBNil
	}

	if change.Zone == "" {
		return ErrZoneEmpty
	}

	return db.Create(change).Error
}

// Get retrieves a change by its ID.
func Get(db *gorm.DB, id uint64) (*models.Change, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var change models.Change

	result := db.First(&change, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChangeNotFound
		}

		return nil, result.Error
	}

	return &change, nil
}

// List returns the newest changes of zone first.
// A limit <= 0 means DefaultLimit.
func List(db *gorm.DB, zone string, limit int) ([]models.Change, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if zone == "" {
		return nil, ErrZoneEmpty
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	var changes []models.Change

	result := db.Where(zoneQueryPattern, zone).Order("id desc").Limit(limit).Find(&changes)
	if result.Error != nil {
		return nil, result.Error
	}

	return changes, nil
}
