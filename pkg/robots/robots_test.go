package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate() *Gate {
	return NewGate(2*time.Second, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestDisallowHonored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /admin/\nDisallow: /tmp\n")
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	gate := testGate()
	require.NoError(t, gate.Load(context.Background(), server.URL+"/"))

	tests := []struct {
		path    string
		allowed bool
	}{
		{"/", true},
		{"/blog/post", true},
		{"/admin/panel", false},
		{"/tmp", false},
	}
	for _, tt := range tests {
		got := gate.CanFetch("anybot/1.0", server.URL+tt.path)
		assert.Equal(t, tt.allowed, got, "path %s", tt.path)
	}
}

func TestFailOpenOnUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // robots.txt fetch now fails at the transport level

	gate := testGate()
	require.NoError(t, gate.Load(context.Background(), serverURL+"/"))
	assert.True(t, gate.CanFetch("anybot/1.0", serverURL+"/anything"))
}

func TestFailOpenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gate := testGate()
	require.NoError(t, gate.Load(context.Background(), server.URL+"/"))
	// The parser rejects a 5xx response, so the gate fails open: a broken
	// robots.txt must never block an analysis.
	assert.True(t, gate.CanFetch("anybot/1.0", server.URL+"/x"))
}

func TestMissingRobotsAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	gate := testGate()
	require.NoError(t, gate.Load(context.Background(), server.URL+"/"))
	assert.True(t, gate.CanFetch("anybot/1.0", server.URL+"/x"))
}

func TestUnknownHostAllowed(t *testing.T) {
	gate := testGate()
	assert.True(t, gate.CanFetch("anybot/1.0", "https://never-loaded.example/page"))
}

func TestPolicyCachedPerHost(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	}))
	defer server.Close()

	gate := testGate()
	require.NoError(t, gate.Load(context.Background(), server.URL+"/a"))
	require.NoError(t, gate.Load(context.Background(), server.URL+"/b"))
	assert.Equal(t, 1, requests)
}
