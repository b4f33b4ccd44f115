// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type CarouselConfig struct {
	CardThreshold     float64 `yaml:"card_threshold"`    // fraction of the card row visible before it animates
	MessageThreshold  float64 `yaml:"message_threshold"` // fraction of the transcript visible before it animates
	StaggerMS         int     `yaml:"stagger_ms"`
	CardDurationMS    int     `yaml:"card_duration_ms"`
	MessageDurationMS int     `yaml:"message_duration_ms"`
	FrameMS           int     `yaml:"frame_ms"`
}

type BookingConfig struct {
	URL                    string `yaml:"url"`
	BackgroundColor        string `yaml:"background_color"`
	TextColor              string `yaml:"text_color"`
	PrimaryColor           string `yaml:"primary_color"`
	HideEventTypeDetails   bool   `yaml:"hide_event_type_details"`
	HideLandingPageDetails bool   `yaml:"hide_landing_page_details"`
}

type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	File    string `yaml:"file,omitempty"`
}

type Config struct {
	Deck     string         `yaml:"deck,omitempty"` // YAML deck file, empty for the built-in deck
	Carousel CarouselConfig `yaml:"carousel"`
	Booking  BookingConfig  `yaml:"booking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads a config file, falling back to defaults when it is absent
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	// Keys missing from the file keep their default values
	cfg := defaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	// Replace out of range values
	applyDefaults(cfg)

	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Carousel.CardThreshold = 0.2
	cfg.Carousel.MessageThreshold = 0.01
	cfg.Carousel.StaggerMS = 100
	cfg.Carousel.CardDurationMS = 500
	cfg.Carousel.MessageDurationMS = 400
	cfg.Carousel.FrameMS = 33
	cfg.Booking.URL = "https://calendly.com/admin-autovuln/30min"
	cfg.Booking.BackgroundColor = "121212"
	cfg.Booking.TextColor = "ffffff"
	cfg.Booking.PrimaryColor = "00a2ff"
	cfg.Logging.Enabled = true
	cfg.Logging.Level = "info"
	return cfg
}

func applyDefaults(cfg *Config) {
	d := defaultConfig()
	if cfg.Carousel.CardThreshold <= 0 || cfg.Carousel.CardThreshold > 1 {
		cfg.Carousel.CardThreshold = d.Carousel.CardThreshold
	}
	if cfg.Carousel.MessageThreshold <= 0 || cfg.Carousel.MessageThreshold > 1 {
		cfg.Carousel.MessageThreshold = d.Carousel.MessageThreshold
	}
	if cfg.Carousel.StaggerMS < 0 {
		cfg.Carousel.StaggerMS = d.Carousel.StaggerMS
	}
	if cfg.Carousel.CardDurationMS <= 0 {
		cfg.Carousel.CardDurationMS = d.Carousel.CardDurationMS
	}
	if cfg.Carousel.MessageDurationMS <= 0 {
		cfg.Carousel.MessageDurationMS = d.Carousel.MessageDurationMS
	}
	if cfg.Carousel.FrameMS <= 0 {
		cfg.Carousel.FrameMS = d.Carousel.FrameMS
	}
	if cfg.Booking.URL == "" {
		cfg.Booking = d.Booking
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
}

// Stagger returns the delay between consecutive entering children
func (c CarouselConfig) Stagger() time.Duration {
	return time.Duration(c.StaggerMS) * time.Millisecond
}

// CardDuration returns the length of one card's entrance
func (c CarouselConfig) CardDuration() time.Duration {
	return time.Duration(c.CardDurationMS) * time.Millisecond
}

// MessageDuration returns the length of one message's entrance
func (c CarouselConfig) MessageDuration() time.Duration {
	return time.Duration(c.MessageDurationMS) * time.Millisecond
}

// Frame returns the animation frame interval
func (c CarouselConfig) Frame() time.Duration {
	return time.Duration(c.FrameMS) * time.Millisecond
}

func ConfigPath() string {
	configDir, _ := os.UserConfigDir()
	if configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "showcase", "config.yaml")
}

// DataDir returns the directory for the deck library and log file
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "showcase"), nil
}
