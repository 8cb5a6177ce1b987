package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "sekret"

type fakePowerDNS struct {
	mu      sync.Mutex
	patches []string
}

func (f *fakePowerDNS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Header.Get("X-API-Key") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Unauthorized"}`)

		return
	}

	switch {
	case r.URL.Path == "/api":
		_, _ = io.WriteString(w, `[{"url":"/api/v1","version":1}]`)
	case r.Method == http.MethodPatch:
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.patches = append(f.patches, string(body))
		f.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/notify"):
		_, _ = io.WriteString(w, `{"result":"Notification queued"}`)
	case strings.HasSuffix(r.URL.Path, "/zones"):
		_, _ = io.WriteString(w, `[{"id":"example.com.","name":"example.com."}]`)
	case strings.Contains(r.URL.Path, "/zones/example.com"):
		_, _ = io.WriteString(w, `{"id":"example.com.","name":"example.com.","rrsets":[
			{"name":"www.example.com.","type":"A","ttl":300,"records":[{"content":"192.0.2.1","disabled":false}]}
		]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Not Found"}`)
	}
}

func (f *fakePowerDNS) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.patches...)
}

func setupEnv(t *testing.T) *fakePowerDNS {
	t.Helper()

	fake := &fakePowerDNS{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	t.Setenv("PDNS_RRSET_POWERDNS_URL", srv.URL)
	t.Setenv("PDNS_RRSET_POWERDNS_APIKEY", testAPIKey)
	t.Setenv("PDNS_RRSET_DB_NAME", filepath.Join(t.TempDir(), "journal.db"))
	t.Setenv("PDNS_RRSET_LOG_CONSOLE_ENABLED", "false")

	return fake
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config=" + t.TempDir()}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestChangeCommands(t *testing.T) {
	fake := setupEnv(t)

	out, err := run(t, "update", "--zone", "example.com", "--name", "www.example.com.", "--type", "A",
		"--ttl", "60", "--record", "192.0.2.7", "--record", "192.0.2.8", "--dry-run")
	require.NoError(t, err)
	assert.Empty(t, fake.sent())
	assert.Contains(t, out, `"dry_run": true`)
	assert.Contains(t, out, `"192.0.2.8"`)

	_, err = run(t, "update", "-z", "example.com", "-n", "www.example.com.", "-t", "A", "-r", "192.0.2.7", "--set-ptr")
	require.NoError(t, err)
	require.Len(t, fake.sent(), 1)
	assert.JSONEq(t,
		`{"rrsets":[{"name":"www.example.com.","type":"A","ttl":3600,"changetype":"REPLACE","records":[{"content":"192.0.2.7","disabled":false,"set-ptr":true}]}]}`,
		fake.sent()[0])

	_, err = run(t, "add", "-z", "example.com.", "-n", "www.example.com.", "-t", "A", "--ttl", "300", "-r", "192.0.2.2")
	require.NoError(t, err)
	require.Len(t, fake.sent(), 2)
	assert.Contains(t, fake.sent()[1], `"192.0.2.1"`)
	assert.Contains(t, fake.sent()[1], `"192.0.2.2"`)

	_, err = run(t, "remove", "-z", "example.com.", "-n", "www.example.com.", "-t", "A")
	require.NoError(t, err)
	require.Len(t, fake.sent(), 3)
	assert.JSONEq(t, `{"rrsets":[{"name":"www.example.com.","type":"A","changetype":"DELETE"}]}`, fake.sent()[2])

	out, err = run(t, "history", "example.com", "--json")
	require.NoError(t, err)

	var history []struct {
		Verb   string `json:"verb"`
		DryRun bool   `json:"dry_run"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history, 4)
	assert.Equal(t, "remove", history[0].Verb)
	assert.True(t, history[3].DryRun)
}

func TestChangeCommands_Invalid(t *testing.T) {
	fake := setupEnv(t)

	_, err := run(t, "update", "--name", "www.example.com.", "--type", "A")
	require.Error(t, err, "zone is required")

	_, err = run(t, "update", "-z", "example.com.", "-n", "www.example.com.", "--no-journal")
	require.Error(t, err)

	_, err = run(t, "remove", "-z", "example.com.", "-n", "www.example.com.", "-t", "A", "--record", "192.0.2.1")
	require.Error(t, err, "remove has no --record flag")

	assert.Empty(t, fake.sent())
}

func TestChangeCommands_File(t *testing.T) {
	fake := setupEnv(t)

	dir := t.TempDir()
	list := filepath.Join(dir, "list.json")
	doc := filepath.Join(dir, "doc.json")
	broken := filepath.Join(dir, "broken.json")

	require.NoError(t, os.WriteFile(list, []byte(`[
		{"name":"a.example.com.","type":"A","records":["192.0.2.1"]},
		{"name":"b.example.com.","type":"TXT","records":[{"content":"\"hello\"","disabled":true}]}
	]`), 0o600))
	require.NoError(t, os.WriteFile(doc, []byte(`{"rrsets":[{"name":"c.example.com.","type":"A","records":["192.0.2.3"]}]}`), 0o600))
	require.NoError(t, os.WriteFile(broken, []byte(`[{"name":"d.example.com.","type":"A","records":[true]}]`), 0o600))

	_, err := run(t, "update", "-z", "example.com.", "-f", list, "--no-journal")
	require.NoError(t, err)
	require.Len(t, fake.sent(), 1)
	assert.Contains(t, fake.sent()[0], `"b.example.com."`)

	_, err = run(t, "update", "-z", "example.com.", "-f", doc, "--no-journal")
	require.NoError(t, err)
	require.Len(t, fake.sent(), 2)
	assert.Contains(t, fake.sent()[1], `"c.example.com."`)

	_, err = run(t, "update", "-z", "example.com.", "-f", broken, "--no-journal")
	require.Error(t, err)
	assert.Len(t, fake.sent(), 2)
}

func TestReadCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "zones")
	require.NoError(t, err)
	assert.Equal(t, "example.com.\n", out)

	out, err = run(t, "show", "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "www.example.com.")
	assert.Contains(t, out, "192.0.2.1")

	out, err = run(t, "notify", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Notification queued\n", out)
}

func TestConfigCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"URL"`)
	assert.NotContains(t, out, testAPIKey)

	out, err = run(t, "config", "--show-secrets")
	require.NoError(t, err)
	assert.Contains(t, out, testAPIKey)
}
