package crates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/libra/pkg/integrations"
)

func TestNewClient(t *testing.T) {
	c := NewClient(nil, "")
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}

func TestClient_FetchCrate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crates/serde":
			w.Write([]byte(`{"crate": {
				"name": "serde",
				"max_version": "1.0.0",
				"description": "  A generic serialization/deserialization framework\n",
				"repository": "https://github.com/serde-rs/serde"
			}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server)

	info, err := c.FetchCrate(context.Background(), "serde")
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}

	if info.Name != "serde" {
		t.Errorf("expected name serde, got %s", info.Name)
	}
	if info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", info.Version)
	}
	if info.Description != "A generic serialization/deserialization framework" {
		t.Errorf("description not trimmed: %q", info.Description)
	}
	if info.Repository != "https://github.com/serde-rs/serde" {
		t.Errorf("unexpected repository %q", info.Repository)
	}
}

func TestClient_FetchCrate_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(t, server)

	_, err := c.FetchCrate(context.Background(), "nonexistent")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchLatestReadme(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/crates/serde":
			w.Write([]byte(`{"crate": {"name": "serde", "max_version": "1.0.210"}}`))
		case "/crates/serde/1.0.210/readme":
			w.Write([]byte(`<h1>Serde</h1>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server)

	html, err := c.FetchLatestReadme(context.Background(), "serde")
	if err != nil {
		t.Fatalf("FetchLatestReadme failed: %v", err)
	}
	if html != "<h1>Serde</h1>" {
		t.Errorf("unexpected readme %q", html)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestClient_FetchReadme_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(t, server)

	if _, err := c.FetchReadme(context.Background(), "serde", ""); err == nil {
		t.Error("expected error for empty version")
	}
	_, err := c.FetchReadme(context.Background(), "serde", "0.0.1")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	return NewClient(server.Client(), server.URL)
}
