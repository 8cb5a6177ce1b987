package powerdns

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pdnsapi "github.com/joeig/go-powerdns/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

const testAPIKey = "sekret"

const zoneJSON = `{
  "id": "example.com.",
  "name": "example.com.",
  "kind": "Native",
  "rrsets": [
    {"name": "www.example.com.", "type": "A", "ttl": 300, "records": [
      {"content": "192.0.2.2", "disabled": true},
      {"content": "192.0.2.1", "disabled": false}
    ]},
    {"name": "example.com.", "type": "SOA", "ttl": 3600, "records": [
      {"content": "ns1.example.com. hostmaster.example.com. 1 10800 3600 604800 3600", "disabled": false}
    ], "comments": [{"content": "managed", "account": "ops", "modified_at": 0}]},
    {"name": "api.example.com.", "type": "CNAME", "ttl": 60, "records": [
      {"content": "www.example.com.", "disabled": false}
    ]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Header.Get("X-API-Key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Unauthorized"}`)

			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/servers/localhost/zones"):
			_, _ = io.WriteString(w, `[{"id":"example.org.","name":"example.org."},{"id":"example.com.","name":"example.com."}]`)
		case strings.Contains(r.URL.Path, "/servers/localhost/zones/example.com"):
			_, _ = io.WriteString(w, zoneJSON)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Not Found"}`)
		}
	}))

	t.Cleanup(srv.Close)

	return srv
}

func openTestEngine(t *testing.T, apiKey string) *Engine {
	t.Helper()

	srv := newTestServer(t)

	return Open(config.PowerDNS{URL: srv.URL + "/", APIKey: apiKey, Server: "localhost"})
}

func TestOpen(t *testing.T) {
	e := Open(config.PowerDNS{URL: "http://127.0.0.1:8081", APIKey: testAPIKey, Server: "localhost"})
	require.NotNil(t, e.client)
	assert.Equal(t, defaultTimeout, e.timeout)
}

func TestTest(t *testing.T) {
	require.NoError(t, openTestEngine(t, testAPIKey).Test(context.Background()))
	require.Error(t, openTestEngine(t, "wrong").Test(context.Background()))
}

func TestNotInitialized(t *testing.T) {
	var e *Engine

	require.ErrorIs(t, e.Test(context.Background()), ErrClientNotInitialized)

	_, err := (&Engine{}).ZoneNames(context.Background())
	require.ErrorIs(t, err, ErrClientNotInitialized)

	_, err = e.Entries(context.Background(), "example.com.")
	require.ErrorIs(t, err, ErrClientNotInitialized)
}

func TestZoneNames(t *testing.T) {
	names, err := openTestEngine(t, testAPIKey).ZoneNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com.", "example.org."}, names)
}

func TestEntries(t *testing.T) {
	e := openTestEngine(t, testAPIKey)

	entries, err := e.Entries(context.Background(), "example.com.")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, Entry{Name: "api.example.com.", Type: "CNAME", TTL: 60, Content: "www.example.com."}, entries[0])
	assert.Equal(t, "example.com.", entries[1].Name)
	assert.Equal(t, "managed", entries[1].Comment)
	assert.Equal(t, Entry{Name: "www.example.com.", Type: "A", TTL: 300, Content: "192.0.2.2", Disabled: true}, entries[2])
	assert.Equal(t, Entry{Name: "www.example.com.", Type: "A", TTL: 300, Content: "192.0.2.1"}, entries[3])

	_, err = e.Entries(context.Background(), " ")
	require.ErrorIs(t, err, ErrZoneNameEmpty)

	_, err = e.Entries(context.Background(), "missing.example.")
	require.Error(t, err)
}

func TestEngineTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	e := &Engine{
		client:  pdnsapi.New(srv.URL, "localhost", pdnsapi.WithAPIKey(testAPIKey)),
		timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	_, err := e.ZoneNames(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	start = time.Now()
	_, err = e.Entries(context.Background(), "example.com.")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestExtractEntries(t *testing.T) {
	name := "www.example.com."
	typ := pdnsapi.RRType("A")
	content := "192.0.2.1"

	entries := extractEntries([]pdnsapi.RRset{
		{Name: &name, Type: &typ, Records: []pdnsapi.Record{{Content: &content}}},
		{Name: nil, Type: &typ, Records: []pdnsapi.Record{{Content: &content}}},
		{Name: &name, Type: &typ},
	})

	assert.Equal(t, []Entry{{Name: "www.example.com.", Type: "A", Content: "192.0.2.1"}}, entries)
}
