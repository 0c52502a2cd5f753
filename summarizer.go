package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// maxTranscriptChars is a hard character cutoff, not a token-aware one.
// Transcripts beyond it are truncated before the completion request.
const maxTranscriptChars = 100_000

const truncationMarker = "\n[transcript truncated]"

const summarySystemPrompt = `You are given the transcript of a YouTube video.
Provide a structured summary with:
1. A one-line TLDR
2. Key points (bulleted)
3. A brief conclusion

Keep the summary concise and readable.`

// truncateTranscript enforces the character limit, appending a marker so
// the model knows the transcript was cut off. The limit counts characters,
// not bytes, so multibyte text is never split mid-rune.
func truncateTranscript(transcript string) string {
	if utf8.RuneCountInString(transcript) <= maxTranscriptChars {
		return transcript
	}
	runes := []rune(transcript)
	return string(runes[:maxTranscriptChars]) + truncationMarker
}

// summarize sends the transcript to Claude and returns the structured
// summary. Errors from the completion call propagate to the caller.
func summarize(transcript, apiKey string, settings *Settings) (string, error) {
	userPrompt := "TRANSCRIPT:\n" + truncateTranscript(transcript)

	requestSettings := types.RequestSettings{
		Model:     settings.Summarizer.Model,
		MaxTokens: settings.Summarizer.MaxTokens,
	}
	response, err := anthropic.PromptWithSettings(summarySystemPrompt, userPrompt, "", apiKey, requestSettings)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in completion response")
	}
	return response.Content[0].Text, nil
}
