package main

import (
	"encoding/json"
	"net/http"
)

// fetchVideoTitle fetches the video title from YouTube's oembed endpoint.
// The title is only used for the note filename, so every failure (network
// error, non-200 status, malformed JSON, missing field) falls back to the
// video ID instead of reporting an error.
func fetchVideoTitle(videoID, oembedURL string) string {
	req, err := http.NewRequest("GET", oembedURL, nil)
	if err != nil {
		return videoID
	}

	q := req.URL.Query()
	q.Add("url", watchURL(videoID))
	q.Add("format", "json")
	req.URL.RawQuery = q.Encode()

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return videoID
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return videoID
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return videoID
	}
	if payload.Title == "" {
		return videoID
	}
	return payload.Title
}
