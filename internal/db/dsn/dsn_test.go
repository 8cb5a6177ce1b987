package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

func TestMySQL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DB
		want string
	}{
		{
			name: "with extras",
			cfg:  config.DB{User: "pdns", Password: "secret", Host: "db", Port: 3307, Name: "journal", Extras: "parseTime=true"},
			want: "pdns:secret@tcp(db:3307)/journal?parseTime=true",
		},
		{
			name: "default port",
			cfg:  config.DB{User: "pdns", Password: "secret", Host: "db", Name: "journal"},
			want: "pdns:secret@tcp(db:3306)/journal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MySQL(tt.cfg))
		})
	}
}

func TestPostgres(t *testing.T) {
	assert.Equal(t,
		"host=db user=pdns password=secret dbname=journal port=5432 sslmode=disable",
		Postgres(config.DB{User: "pdns", Password: "secret", Host: "db", Name: "journal", Extras: "sslmode=disable"}),
	)
}

func TestSQLite(t *testing.T) {
	assert.Equal(t, "journal.db", SQLite(config.DB{Name: "journal.db"}))
	assert.Equal(t, "file::memory:?cache=shared", SQLite(config.DB{Name: "file::memory:", Extras: "cache=shared"}))
}
