package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/flashcards/internal/card"
	"github.com/arcanaland/flashcards/internal/deck"
)

// Environment variables that override speech credentials from the config file
const (
	EnvSpeechAppID       = "FLASHCARDS_SPEECH_APP_ID"
	EnvSpeechAccessToken = "FLASHCARDS_SPEECH_ACCESS_TOKEN"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck string       `toml:"default_deck"`
	Card        CardConfig   `toml:"card"`
	Speech      SpeechConfig `toml:"speech"`
}

// CardConfig controls the card layout
type CardConfig struct {
	MaxWidth         int    `toml:"max_width" validate:"gt=5"`
	MinContentHeight int    `toml:"min_content_height" validate:"gte=0"`
	Border           string `toml:"border" validate:"len=1"`
}

// SpeechConfig controls answering by voice
type SpeechConfig struct {
	Endpoint      string   `toml:"endpoint" validate:"required,url"`
	AppID         string   `toml:"app_id"`
	AccessToken   string   `toml:"access_token"`
	ResourceID    string   `toml:"resource_id" validate:"required"`
	Language      string   `toml:"language" validate:"required"`
	RecordCommand []string `toml:"record_command" validate:"required,min=1"`
	RecordSeconds int      `toml:"record_seconds" validate:"gt=0,lte=300"`
	TimeoutSecs   int      `toml:"timeout_seconds" validate:"gt=0"`
	FallbackText  string   `toml:"fallback_text"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DefaultDeck: "",
		Card: CardConfig{
			MaxWidth:         card.DefaultMaxWidth,
			MinContentHeight: card.DefaultMinContentHeight,
			Border:           "*",
		},
		Speech: SpeechConfig{
			Endpoint:      "wss://openspeech.bytedance.com/api/v3/sauc/bigmodel_nostream",
			ResourceID:    "volc.bigasr.sauc.duration",
			Language:      "en-US",
			RecordCommand: []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw", "-d", "{seconds}"},
			RecordSeconds: 5,
			TimeoutSecs:   30,
			FallbackText:  "no input",
		},
	}
}

// BorderRune returns the configured border character
func (c *Config) BorderRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Card.Border)
	return r
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv overrides speech credentials from the environment
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvSpeechAppID)); v != "" {
		c.Speech.AppID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSpeechAccessToken)); v != "" {
		c.Speech.AccessToken = v
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "flashcards", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "flashcards", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use.
// Keys missing from the file keep their default values.
func LoadConfig() (*Config, error) {
	config, err := loadFile()
	if err != nil {
		return nil, err
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFile() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetDeckPath returns the path to a deck, either in the deck library or a
// relative path. Library names may omit the file extension.
func GetDeckPath(deckName string) (string, error) {
	libraryPath := GetDeckLibraryPath()

	candidates := []string{filepath.Join(libraryPath, deckName)}
	for _, ext := range deck.Extensions {
		candidates = append(candidates, filepath.Join(libraryPath, deckName+ext))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	// If not found in the library, treat as a relative path
	if info, err := os.Stat(deckName); err == nil && !info.IsDir() {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// GetNewDeckPath returns where a deck that may not exist yet should live.
// Bare names go to the deck library as YAML, anything path-like is used as is.
func GetNewDeckPath(deckName string) string {
	if strings.ContainsRune(deckName, filepath.Separator) || strings.Contains(deckName, "/") {
		return deckName
	}
	if !deck.IsDeckFile(deckName) {
		deckName += ".yaml"
	}
	return filepath.Join(GetDeckLibraryPath(), deckName)
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	// Read the file alone so environment credentials are not persisted
	config, err := loadFile()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName

	return writeConfig(config)
}
