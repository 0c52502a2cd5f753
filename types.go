package main

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal failure kinds in the pipeline. Metadata
// lookup is the only non-fatal stage and has no error of its own.
var (
	ErrInvalidInput          = errors.New("could not extract video ID")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrMissingCredential     = errors.New("OBSIDIAN_REST_API_KEY environment variable not set")
	ErrPublish               = errors.New("sending to Obsidian failed")
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// watchURL builds the canonical watch URL for a video ID.
func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
