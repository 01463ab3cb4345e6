package store

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the on-disk homes of the journal.
type Config interface {
	DatabasePath() string
	BlobPath() string
}

// LoadConfig reads .memoir.yaml (current directory or MEMOIR_CONFIG_PATH)
// plus MEMOIR_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("database", "~/.memoir/journal.db")
	viper.SetDefault("blobs", "~/.memoir/blobs")
	viper.SetConfigName(".memoir") // .yaml is implicit
	viper.SetEnvPrefix("MEMOIR")
	viper.AutomaticEnv()

	if override := os.Getenv("MEMOIR_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &fileConfig{
		Database: expand(viper.GetString("database")),
		Blobs:    expand(viper.GetString("blobs")),
	}, nil
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

type fileConfig struct {
	Database string `json:"database"`
	Blobs    string `json:"blobs"`
}

func (f *fileConfig) DatabasePath() string {
	return f.Database
}

func (f *fileConfig) BlobPath() string {
	return f.Blobs
}

// EnsureDirs creates the parent directories the config points at.
func EnsureDirs(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0o755); err != nil {
		return err
	}
	return os.MkdirAll(cfg.BlobPath(), 0o755)
}
