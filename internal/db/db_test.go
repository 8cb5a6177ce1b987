package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/db/models"
)

func TestDialector(t *testing.T) {
	for _, engine := range []string{config.GormEngineSQLite, config.GormEngineMySQL, config.GormEnginePostgres} {
		d, err := Dialector(config.DB{GormEngine: engine, Name: "journal", Host: "db"})
		require.NoError(t, err, engine)

		assert.Equal(t, engine, d.Name())
	}

	_, err := Dialector(config.DB{GormEngine: "oracle"})
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.DB{GormEngine: config.GormEngineSQLite, Name: filepath.Join(t.TempDir(), "journal.db")})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Change{Zone: "example.com.", Verb: "add"}).Error)

	var count int64

	require.NoError(t, db.Model(&models.Change{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
