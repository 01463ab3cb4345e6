package commands

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/store"
)

// openStore loads the config and opens the journal.
func openStore() (store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDirs(cfg); err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

// generator builds the AI client from the environment. With no API key
// the scripted generator stands in, so the CLI works offline.
func generator() ai.Generator {
	key := os.Getenv("MEMOIR_AI_KEY")
	if key == "" {
		return &ai.Scripted{
			Text:  `{"summary":"Set MEMOIR_AI_KEY to get real reflections.","moodInsight":"","patterns":[],"suggestions":[]}`,
			Image: nil,
		}
	}
	baseURL := os.Getenv("MEMOIR_AI_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("MEMOIR_AI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return ai.NewClient(baseURL, key, model, "gpt-image-1", 3)
}

// capabilities wires the local stand-in platform services.
func capabilities(photoPath string) platform.Capabilities {
	return platform.Capabilities{
		Notifier:    &platform.LocalNotifier{Path: reminderPath()},
		Biometric:   platform.NoBiometric{},
		Speech:      platform.FileSpeech{},
		PhotoPicker: &platform.FilePicker{Path: photoPath},
	}
}

func reminderPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".memoir-reminder.json"
	}
	return filepath.Join(home, ".memoir", "reminder.json")
}
