package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	noObsidian   bool
	apiKey       string
	settingsPath string
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "yt-summarize [url]",
	Short: "Summarize a YouTube video using its transcript and Claude",
	Long: `Fetches the transcript of a YouTube video, summarizes it with Claude,
and optionally saves the summary as a note in Obsidian via the Local REST API plugin.

The argument may be a YouTube URL in any common shape or a bare 11-character video ID.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get API key
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
		}

		if debugMode {
			SetDebugMode(true)
		}

		settings, err := loadSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		if err := settings.applyEnvOverrides(); err != nil {
			return err
		}

		return newPipeline().run(args[0], apiKey, settings, !noObsidian)
	},
}

// pipeline holds the stages run drives, as swappable functions, plus the
// stream the summary is written to.
type pipeline struct {
	fetchTitle      func(videoID, oembedURL string) string
	fetchTranscript func(videoID string) (string, error)
	summarize       func(transcript, apiKey string, settings *Settings) (string, error)
	publish         func(title, videoID, summary string, settings *Settings) error
	out             io.Writer
}

// newPipeline wires the real stages.
func newPipeline() *pipeline {
	return &pipeline{
		fetchTitle: fetchVideoTitle,
		fetchTranscript: func(videoID string) (string, error) {
			return NewTranscriptClient().FetchTranscript(videoID)
		},
		summarize: summarize,
		publish:   publishSummary,
		out:       os.Stdout,
	}
}

// run drives the pipeline in sequence: resolve ID, fetch title, fetch
// transcript, summarize, then optionally publish. The summary is written
// before publishing is attempted, so a publish failure still leaves the
// summary visible.
func (p *pipeline) run(input, apiKey string, settings *Settings, publish bool) error {
	videoID, err := extractVideoID(input)
	if err != nil {
		return err
	}
	log.Printf("Fetching transcript for video: %s ...", videoID)

	title := p.fetchTitle(videoID, settings.Metadata.OEmbedURL)
	log.Printf("Video title: %s", title)

	transcript, err := p.fetchTranscript(videoID)
	if err != nil {
		return err
	}
	log.Printf("Transcript fetched (%d chars). Summarizing ...", len(transcript))

	summary, err := p.summarize(transcript, apiKey, settings)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, summary)

	if !publish {
		return nil
	}
	return p.publish(title, videoID, summary, settings)
}

func init() {
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	rootCmd.Flags().BoolVar(&noObsidian, "no-obsidian", false, "Skip sending the summary to Obsidian")
	rootCmd.Flags().StringVar(&settingsPath, "settings", defaultSettingsPath, "Path to settings file")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	// Progress and diagnostics go to stderr; only the summary goes to stdout.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
