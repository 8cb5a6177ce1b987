// Package db opens the change journal database.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/dsn"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/models"
	gormadapter "github.com/GoPowerDNS-Admin/pdns-rrset/internal/logger/adapter/gorm"
)

// Dialector picks the gorm driver for the configured engine.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.GormEngine {
	case config.GormEngineSQLite, "":
		return sqlite.Open(dsn.SQLite(cfg)), nil
	case config.GormEngineMySQL:
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.GormEnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.GormEngine)
	}
}

// Open connects to the journal database and migrates its schema.
func Open(cfg config.DB) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.GormEngine)
	}

	if err = db.AutoMigrate(&models.Change{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
