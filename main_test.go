package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newVaultCounter returns a TLS server standing in for the Obsidian vault
// endpoint, counting every request it receives.
func newVaultCounter(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	var requests int
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

// testPipeline returns a pipeline with non-network stages, publishing
// through the real credential/client path against the given settings.
func testPipeline(out *bytes.Buffer) *pipeline {
	return &pipeline{
		fetchTitle:      func(videoID, oembedURL string) string { return "Test Video" },
		fetchTranscript: func(videoID string) (string, error) { return "some transcript", nil },
		summarize: func(transcript, apiKey string, settings *Settings) (string, error) {
			return "the summary", nil
		},
		publish: publishSummary,
		out:     out,
	}
}

func TestRunSkipPublish(t *testing.T) {
	server, requests := newVaultCounter(t)
	t.Setenv("OBSIDIAN_REST_API_KEY", "token")

	settings := defaultSettings()
	settings.Obsidian.Port = testServerPort(t, server)

	var out bytes.Buffer
	p := testPipeline(&out)

	if err := p.run("dQw4w9WgXcQ", "api-key", settings, false); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(out.String(), "the summary") {
		t.Errorf("run() output = %q, want the summary printed", out.String())
	}
	if *requests != 0 {
		t.Errorf("run() with publishing skipped made %d vault requests, want 0", *requests)
	}
}

func TestRunMissingCredentialMakesNoRequest(t *testing.T) {
	server, requests := newVaultCounter(t)
	t.Setenv("OBSIDIAN_REST_API_KEY", "")

	settings := defaultSettings()
	settings.Obsidian.Port = testServerPort(t, server)

	var out bytes.Buffer
	p := testPipeline(&out)

	err := p.run("dQw4w9WgXcQ", "api-key", settings, true)
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("run() error = %v, want ErrMissingCredential", err)
	}

	// The summary is printed before publishing is attempted.
	if !strings.Contains(out.String(), "the summary") {
		t.Errorf("run() output = %q, want the summary printed despite the publish failure", out.String())
	}
	if *requests != 0 {
		t.Errorf("run() without a credential made %d vault requests, want 0", *requests)
	}
}

func TestRunPublishes(t *testing.T) {
	server, requests := newVaultCounter(t)
	t.Setenv("OBSIDIAN_REST_API_KEY", "token")

	settings := defaultSettings()
	settings.Obsidian.Port = testServerPort(t, server)

	var out bytes.Buffer
	p := testPipeline(&out)

	if err := p.run("dQw4w9WgXcQ", "api-key", settings, true); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if *requests != 1 {
		t.Errorf("run() made %d vault requests, want 1", *requests)
	}
}

func TestRunInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := testPipeline(&out)

	err := p.run("definitely not a video reference", "api-key", defaultSettings(), true)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("run() error = %v, want ErrInvalidInput", err)
	}
	if out.Len() != 0 {
		t.Errorf("run() output = %q, want nothing printed on invalid input", out.String())
	}
}
