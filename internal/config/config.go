package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Varun5711/link2qr/internal/theme"
)

type Config struct {
	Render RenderConfig
	QR     QRConfig
	Cache  CacheConfig
	Save   SaveConfig
	Theme  theme.Palette
	Log    LogConfig
}

type RenderConfig struct {
	DebounceInterval time.Duration
	AutoMode         bool
	Async            bool
}

type QRConfig struct {
	Size       int
	Border     int
	Level      string
	Foreground string
	Background string
}

type CacheConfig struct {
	Capacity int
}

type SaveConfig struct {
	Dir    string
	Verify bool
}

type LogConfig struct {
	Level  string
	File   string
	Colors bool
}

func Load() (*Config, error) {
	// .env is optional; the process environment always wins.
	_ = godotenv.Load()

	defaults := theme.DefaultPalette()

	cfg := &Config{
		Render: RenderConfig{
			DebounceInterval: getEnvAsDuration("DEBOUNCE_INTERVAL", 300*time.Millisecond),
			AutoMode:         getEnvAsBool("AUTO_RENDER", true),
			Async:            getEnvAsBool("RENDER_ASYNC", true),
		},
		QR: QRConfig{
			Size:       getEnvAsInt("QR_SIZE", 320),
			Border:     getEnvAsInt("QR_BORDER", 2),
			Level:      strings.ToLower(getEnv("QR_LEVEL", "medium")),
			Foreground: theme.SafeColor(getEnv("QR_FOREGROUND", "#000000"), "#000000"),
			Background: theme.SafeColor(getEnv("QR_BACKGROUND", "#ffffff"), "#ffffff"),
		},
		Cache: CacheConfig{
			Capacity: getEnvAsInt("CACHE_CAPACITY", 64),
		},
		Save: SaveConfig{
			Dir:    getEnv("SAVE_DIR", "."),
			Verify: getEnvAsBool("VERIFY_ON_SAVE", true),
		},
		Theme: theme.Palette{
			Background: getEnv("THEME_BG", defaults.Background),
			Card:       getEnv("THEME_CARD", defaults.Card),
			Foreground: getEnv("THEME_FG", defaults.Foreground),
			Accent:     getEnv("THEME_ACCENT", defaults.Accent),
			Primary:    getEnv("THEME_PRIMARY", defaults.Primary),
			Danger:     getEnv("THEME_DANGER", defaults.Danger),
		}.Sanitize(),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			File:   getEnv("LOG_FILE", ""),
			Colors: getEnvAsBool("LOG_COLORS", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validLevels = map[string]bool{
	"low":      true,
	"medium":   true,
	"quartile": true,
	"high":     true,
}

func (c *Config) Validate() error {
	var errs []error

	if c.Render.DebounceInterval <= 0 {
		errs = append(errs, fmt.Errorf("DEBOUNCE_INTERVAL must be positive, got %s", c.Render.DebounceInterval))
	}
	// The smallest symbol is 21 modules wide plus the quiet zone on both sides.
	if minSize := 21 + 2*c.QR.Border; c.QR.Size < minSize {
		errs = append(errs, fmt.Errorf("QR_SIZE must be at least %d for QR_BORDER %d, got %d", minSize, c.QR.Border, c.QR.Size))
	}
	if c.QR.Border < 0 {
		errs = append(errs, fmt.Errorf("QR_BORDER must not be negative, got %d", c.QR.Border))
	}
	if !validLevels[c.QR.Level] {
		errs = append(errs, fmt.Errorf("QR_LEVEL must be one of low, medium, quartile, high, got %q", c.QR.Level))
	}
	if c.Cache.Capacity < 0 {
		errs = append(errs, fmt.Errorf("CACHE_CAPACITY must not be negative, got %d", c.Cache.Capacity))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
