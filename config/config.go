package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	appDirName    = "StickyNotes"
	DefaultHotkey = "ctrl+shift+n"
)

type Config struct {
	Debug     bool
	DataDir   string
	StatePath string
	LogDir    string
	Hotkey    string
}

// Load reads an optional .env file and resolves every setting from the
// environment, falling back to per-user defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Debug:     parseBool(GetEnv("STICKY_DEBUG")),
		DataDir:   GetEnv("STICKY_DATA_DIR"),
		StatePath: GetEnv("STICKY_STATE_PATH"),
		LogDir:    GetEnv("STICKY_LOG_DIR"),
		Hotkey:    GetEnv("STICKY_HOTKEY"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.DataHome, appDirName)
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(xdg.StateHome, appDirName, "window-state.json")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(os.TempDir(), "notes_logs")
	}
	if cfg.Hotkey == "" {
		cfg.Hotkey = DefaultHotkey
	}
	return cfg
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "db.sqlite")
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
