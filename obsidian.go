package main

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/template"
)

// noteTemplate renders the persisted note: YAML front matter followed by the
// summary body.
const noteTemplate = `---
source: {{.Source}}
type: youtube-summary
---

{{.Summary}}
`

// Note carries the fields the note template needs.
type Note struct {
	Source  string
	Summary string
}

// ObsidianClient writes notes through the Obsidian Local REST API plugin on
// the local loopback interface.
type ObsidianClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// resolveObsidianCredential reads the bearer token for the Local REST API
// plugin from the environment. Publishing is impossible without it, so its
// absence is a hard failure before any request is made.
func resolveObsidianCredential() (string, error) {
	apiKey := os.Getenv("OBSIDIAN_REST_API_KEY")
	if apiKey == "" {
		return "", ErrMissingCredential
	}
	return apiKey, nil
}

// publishSummary resolves the credential and writes the note. The credential
// check runs before any client exists, so a missing credential means no
// request is ever made.
func publishSummary(title, videoID, summary string, settings *Settings) error {
	credential, err := resolveObsidianCredential()
	if err != nil {
		return err
	}
	client := NewObsidianClient(settings.Obsidian.Port, credential)
	return client.PublishNote(title, videoID, summary, settings.Obsidian.Folder)
}

// NewObsidianClient returns a client for the plugin's loopback endpoint.
// The plugin serves a self-signed certificate, so certificate verification
// is disabled for this one client only, never for the default transport.
func NewObsidianClient(port int, apiKey string) *ObsidianClient {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &ObsidianClient{
		baseURL: fmt.Sprintf("https://127.0.0.1:%d", port),
		apiKey:  apiKey,
		client:  &http.Client{Transport: transport},
	}
}

// sanitizeTitle replaces characters that are unsafe in note filenames with
// hyphens and trims surrounding whitespace.
func sanitizeTitle(title string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, title)
	return strings.TrimSpace(sanitized)
}

// encodeNotePath URL-encodes a vault path, preserving path separators.
func encodeNotePath(notePath string) string {
	segments := strings.Split(notePath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// renderNote builds the note document from the template.
func renderNote(videoID, summary string) (string, error) {
	tmpl, err := template.New("note").Parse(noteTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing note template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, Note{Source: watchURL(videoID), Summary: summary})
	if err != nil {
		return "", fmt.Errorf("rendering note: %w", err)
	}
	return buf.String(), nil
}

// PublishNote creates or overwrites the note for a video in the vault.
// PUT-by-path is idempotent: re-publishing the same title overwrites the
// same note rather than creating a duplicate.
func (oc *ObsidianClient) PublishNote(title, videoID, summary, folder string) error {
	notePath := fmt.Sprintf("%s/%s.md", folder, sanitizeTitle(title))

	content, err := renderNote(videoID, summary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	putURL := fmt.Sprintf("%s/vault/%s", oc.baseURL, encodeNotePath(notePath))
	req, err := http.NewRequest(http.MethodPut, putURL, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	req.Header.Set("Authorization", "Bearer "+oc.apiKey)
	req.Header.Set("Content-Type", "text/markdown")

	resp, err := oc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %v", ErrPublish, &HTTPError{StatusCode: resp.StatusCode, URL: putURL})
	}

	log.Printf("Saved to Obsidian: %s", notePath)
	return nil
}
