package daemon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

func TestNew(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, ErrConfigNil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api":
			_, _ = io.WriteString(w, `[{"url":"/api/v1","version":1}]`)
		case "/api/v1/servers/localhost/zones":
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := &config.Config{
		Title: "pdns-rrset",
		PowerDNS: config.PowerDNS{
			URL:        srv.URL,
			APIKey:     "sekret",
			Server:     "localhost",
			APIVersion: config.APIVersionAuto,
		},
		DB: config.DB{
			GormEngine: config.GormEngineSQLite,
			Name:       filepath.Join(t.TempDir(), "journal.db"),
		},
		Webserver: config.Webserver{Port: 8080, ShutDownTime: 1},
	}

	d, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, d.webService)

	defer d.Close()

	resp, err := d.webService.App.Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_UnreachablePowerDNS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(context.Background(), &config.Config{
		PowerDNS: config.PowerDNS{URL: url, APIKey: "sekret", Server: "localhost", APIVersion: "auto"},
		DB:       config.DB{GormEngine: config.GormEngineSQLite, Name: filepath.Join(t.TempDir(), "journal.db")},
	})
	require.Error(t, err)
}
