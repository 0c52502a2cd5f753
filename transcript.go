package main

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
)

// YouTube Innertube constants. The ANDROID client's /player endpoint returns
// the caption track list without requiring signature decryption.
const (
	innertubePlayerURL   = "https://www.youtube.com/youtubei/v1/player"
	androidClientVersion = "20.10.38"
	androidUserAgent     = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// captionTrack is one caption variant from the Innertube player response.
type captionTrack struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool   `json:"isTranslatable"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// timedText maps the caption XML: a flat list of timed <text> entries.
type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// TranscriptClient fetches caption transcripts through YouTube's Innertube
// API. Every remote call is attempted exactly once.
type TranscriptClient struct {
	client    *http.Client
	playerURL string
}

// NewTranscriptClient returns a client against the public Innertube endpoint.
func NewTranscriptClient() *TranscriptClient {
	return &TranscriptClient{
		client:    &http.Client{},
		playerURL: innertubePlayerURL,
	}
}

// FetchTranscript returns the full transcript text for a video, preferring a
// manually created English track, then an auto-generated English track, then
// the first available track machine-translated into English. Failure at any
// point after track selection fails the whole operation.
func (tc *TranscriptClient) FetchTranscript(videoID string) (string, error) {
	tracks, err := tc.listCaptionTracks(videoID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("%w: no caption tracks for %s", ErrTranscriptUnavailable, videoID)
	}

	track, translate := selectTrack(tracks)
	debugLog("selected caption track: lang=%s kind=%s translate=%v", track.LanguageCode, track.Kind, translate)

	trackURL := track.BaseURL
	if translate {
		trackURL += "&tlang=en"
	}

	transcript, err := tc.fetchTimedText(trackURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}
	if transcript == "" {
		return "", fmt.Errorf("%w: empty transcript for %s", ErrTranscriptUnavailable, videoID)
	}
	return transcript, nil
}

// selectTrack picks the caption track to fetch and reports whether it must
// be translated into English.
func selectTrack(tracks []captionTrack) (captionTrack, bool) {
	// 1. Manually created English track
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) && t.Kind != "asr" {
			return t, false
		}
	}
	// 2. Auto-generated English track
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) {
			return t, false
		}
	}
	// 3. First enumerated track, translated
	return tracks[0], true
}

func isEnglish(languageCode string) bool {
	return languageCode == "en" || strings.HasPrefix(languageCode, "en-")
}

// listCaptionTracks enumerates the caption tracks for a video via the
// ANDROID Innertube /player endpoint.
func (tc *TranscriptClient) listCaptionTracks(videoID string) ([]captionTrack, error) {
	payload := map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				"clientName":        "ANDROID",
				"clientVersion":     androidClientVersion,
				"androidSdkVersion": 30,
				"hl":                "en",
				"gl":                "US",
			},
		},
		"racyCheckOk":    true,
		"contentCheckOk": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", tc.playerURL+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidClientVersion)

	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	debugLog("innertube player response: status=%d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: tc.playerURL}
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// fetchTimedText downloads a caption track and joins the text of its timed
// entries in original order with single spaces, discarding timing metadata.
func (tc *TranscriptClient) fetchTimedText(trackURL string) (string, error) {
	req, err := http.NewRequest("GET", trackURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", androidUserAgent)

	resp, err := tc.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: trackURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parsing timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
