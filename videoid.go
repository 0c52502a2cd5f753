package main

import (
	"fmt"
	"regexp"
)

// videoIDPatterns match the known YouTube URL shapes, tried in order. Each
// pattern captures the 11-character video ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

var bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// extractVideoID extracts the video ID from a YouTube URL, or returns the
// input unchanged when it is already a bare 11-character ID.
func extractVideoID(input string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(input); len(m) > 1 {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(input) {
		return input, nil
	}
	return "", fmt.Errorf("%w from: %s", ErrInvalidInput, input)
}
