package sync

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client for address whose connections all go to srv,
// so requests keep their http://address:1337 URL.
func newTestClient(t *testing.T, address string, srv *httptest.Server) *Client {
	t.Helper()
	hc := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, srv.Listener.Addr().String())
		},
	}}
	c, err := NewClient(address, WithHTTPClient(hc), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestConfigURL(t *testing.T) {
	assert.Equal(t, "http://10.0.0.5:1337/config", ConfigURL("10.0.0.5"))
	assert.Equal(t, "http://mortar.local:1337/config", ConfigURL("mortar.local"))
	assert.Equal(t, "http://[::1]:1337/config", ConfigURL("::1"))
}

func TestNewClientRequiresAddress(t *testing.T) {
	_, err := NewClient("  ")
	assert.True(t, apperr.Is(err, apperr.ConfigError))
}

func TestWithTimeoutLeavesSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	before, err := NewClient("10.0.0.5", WithTimeout(3*time.Second), WithHTTPClient(shared))
	require.NoError(t, err)
	after, err := NewClient("10.0.0.5", WithHTTPClient(shared), WithTimeout(3*time.Second))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 3*time.Second, before.http.Timeout)
	assert.Equal(t, 3*time.Second, after.http.Timeout)
	assert.NotSame(t, shared, before.http)

	plain, err := NewClient("10.0.0.5", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Same(t, shared, plain.http)
}

func TestLoad(t *testing.T) {
	var gotHost, gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost, gotPath, gotMethod = r.Host, r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hosts":[{"display_name":"A"},{"display_name":"B"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, "10.0.0.5", srv)
	doc, err := c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:1337", gotHost)
	assert.Equal(t, ConfigPath, gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	require.Len(t, doc.Hosts, 2)
	assert.Equal(t, "A", doc.Hosts[0].DisplayName)
	assert.Equal(t, "B", doc.Hosts[1].DisplayName)
	assert.Equal(t, "10.0.0.5:1337", c.Endpoint())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantStatus: 500},
		{name: "not found", status: http.StatusNotFound, wantStatus: 404},
		{name: "not json", status: http.StatusOK, body: "<html></html>"},
		{name: "json array", status: http.StatusOK, body: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, "10.0.0.5", srv).Load(context.Background())
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.SyncError))
			assert.Equal(t, tt.wantStatus, StatusCode(err))
			if tt.body != "" && tt.wantStatus != 0 {
				assert.Contains(t, err.Error(), tt.body)
			}
		})
	}
}

func TestLoadNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newTestClient(t, "10.0.0.5", srv).Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.SyncError))
	assert.Zero(t, StatusCode(err))
}

func TestSave(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	doc := models.Document{Hosts: []models.HostEntry{
		{DisplayName: "A", Password: "pw", Filters: models.Filters{InclusiveFilters: []string{"b", "a"}}},
	}}
	require.NoError(t, newTestClient(t, "10.0.0.5", srv).Save(context.Background(), doc))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)

	var sent models.Document
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, doc, sent)
}

func TestSaveFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "read only", http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestClient(t, "10.0.0.5", srv).Save(context.Background(), models.Document{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.SyncError))
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
	assert.Contains(t, err.Error(), "HTTP error! status: 403")
}
