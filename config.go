package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultSettingsPath = ".yt-summarize/settings.yaml"

// Settings represents the YAML configuration structure. Every field has a
// built-in default so the settings file is optional.
type Settings struct {
	Summarizer struct {
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"summarizer"`
	Obsidian struct {
		Port   int    `yaml:"port"`
		Folder string `yaml:"folder"`
	} `yaml:"obsidian"`
	Metadata struct {
		OEmbedURL string `yaml:"oembed_url"`
	} `yaml:"metadata"`
}

func defaultSettings() *Settings {
	settings := &Settings{}
	settings.Summarizer.Model = "claude-sonnet-4-20250514"
	settings.Summarizer.MaxTokens = 1024
	settings.Obsidian.Port = 27124
	settings.Obsidian.Folder = "transcripts/videos"
	settings.Metadata.OEmbedURL = "https://www.youtube.com/oembed"
	return settings
}

// loadSettings loads settings from a YAML file, falling back to defaults
// when the file doesn't exist. Fields left empty in the file keep their
// default values.
func loadSettings(settingsPath string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return settings, nil
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}
	return settings, nil
}

// applyEnvOverrides maps the OBSIDIAN_* environment variables onto the
// settings. The environment always wins over the settings file.
func (s *Settings) applyEnvOverrides() error {
	if v := os.Getenv("OBSIDIAN_REST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid OBSIDIAN_REST_PORT %q: %w", v, err)
		}
		s.Obsidian.Port = port
	}
	if v := os.Getenv("OBSIDIAN_SUMMARY_FOLDER"); v != "" {
		s.Obsidian.Folder = v
	}
	return nil
}
