package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchVideoTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("unexpected url parameter: %q", r.URL.Query().Get("url"))
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("unexpected format parameter: %q", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Never Gonna Give You Up", "author_name": "Rick Astley"}`))
	}))
	defer server.Close()

	title := fetchVideoTitle("dQw4w9WgXcQ", server.URL)
	if title != "Never Gonna Give You Up" {
		t.Errorf("fetchVideoTitle() = %q, want %q", title, "Never Gonna Give You Up")
	}
}

func TestFetchVideoTitleFallsBackToID(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"title": `))
			},
		},
		{
			name: "missing title field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"author_name": "Rick Astley"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			title := fetchVideoTitle("dQw4w9WgXcQ", server.URL)
			if title != "dQw4w9WgXcQ" {
				t.Errorf("fetchVideoTitle() = %q, want fallback to video ID", title)
			}
		})
	}
}

func TestFetchVideoTitleUnreachableEndpoint(t *testing.T) {
	// Start and immediately stop a server to get a dead address.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	title := fetchVideoTitle("dQw4w9WgXcQ", deadURL)
	if title != "dQw4w9WgXcQ" {
		t.Errorf("fetchVideoTitle() = %q, want fallback to video ID", title)
	}
}
