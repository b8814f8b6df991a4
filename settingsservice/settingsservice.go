package settingsservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.design/x/hotkey"
)

// ====== Constants ======
const (
	KeyTheme           = "theme"
	KeyShowWordCount   = "showWordCount"
	KeyLaunchOnStartup = "launchOnStartup"
	KeyHotkey          = "hotkey"

	defaultTheme = "light"
	storeTimeout = 10 * time.Second

	EventSettingsUpdated = "Backend:SettingsUpdated"
)

// ====== Collaborators ======

type Store interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

type Startup interface {
	IsEnabled() bool
	EnableLaunchAtLogin() error
	DisableLaunchAtLogin() error
}

type Emitter interface {
	EmitEvent(name string, data ...any)
}

// ====== Structs ======

type SettingsService struct {
	app           Emitter
	store         Store
	startup       Startup
	defaultHotkey string
	logger        *slog.Logger
}

type FrontendSettings struct {
	Theme           string `json:"theme"`
	ShowWordCount   bool   `json:"show_word_count"`
	LaunchOnStartup bool   `json:"launch_on_startup"`
	Hotkey          string `json:"hotkey"`
}

// ====== Initializers ======

func NewSettingsService(store Store, startup Startup, defaultHotkey string, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		store:         store,
		startup:       startup,
		defaultHotkey: defaultHotkey,
		logger:        logger,
	}
}

func (s *SettingsService) SetApp(app Emitter) {
	s.app = app
}

// ====== Hotkey ======

type HotkeyConfig struct {
	Modifiers []hotkey.Modifier `json:"Modifiers"`
	Key       hotkey.Key        `json:"Key"`
}

func (h *HotkeyConfig) String() string {
	var parts []string
	for _, mod := range h.Modifiers {
		if modStr, ok := revModMap[mod]; ok {
			parts = append(parts, modStr)
		}
	}
	if keyStr, ok := revKeyMap[h.Key]; ok {
		parts = append(parts, keyStr)
	}
	return strings.Join(parts, "+")
}

func (h *HotkeyConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func ParseHotkeyString(input string) (HotkeyConfig, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(input)), "+")
	var mods []hotkey.Modifier
	var key hotkey.Key
	keyFound := false

	for _, part := range parts {
		if mod, ok := modMap[part]; ok {
			mods = append(mods, mod)
		} else if k, ok := keyMap[part]; ok {
			key = k
			keyFound = true
		} else {
			return HotkeyConfig{}, fmt.Errorf("unknown hotkey part: %s", part)
		}
	}

	if !keyFound {
		return HotkeyConfig{}, fmt.Errorf("no valid key in hotkey string")
	}

	return HotkeyConfig{
		Modifiers: mods,
		Key:       key,
	}, nil
}

// Hotkey returns the stored new-note shortcut, or the default one when the
// stored value is missing or unparsable.
func (s *SettingsService) Hotkey() (HotkeyConfig, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	raw, found, err := s.store.GetSetting(ctx, KeyHotkey)
	if err != nil {
		s.logger.Warn("failed to load hotkey setting", "error", err)
	}
	if found {
		if cfg, err := ParseHotkeyString(raw); err == nil {
			return cfg, nil
		}
		s.logger.Warn("stored hotkey is invalid, using default", "hotkey", raw)
	}
	return ParseHotkeyString(s.defaultHotkey)
}

// ====== Frontend Integration ======

func (s *SettingsService) GetSettings() (FrontendSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	frontend := FrontendSettings{
		Theme:         defaultTheme,
		ShowWordCount: true,
	}

	if v, found, err := s.store.GetSetting(ctx, KeyTheme); err != nil {
		return FrontendSettings{}, err
	} else if found && v != "" {
		frontend.Theme = v
	}

	if v, found, err := s.store.GetSetting(ctx, KeyShowWordCount); err != nil {
		return FrontendSettings{}, err
	} else if found {
		frontend.ShowWordCount = v != "false"
	}

	if s.startup != nil {
		frontend.LaunchOnStartup = s.startup.IsEnabled()
	}

	hk, err := s.Hotkey()
	if err != nil {
		frontend.Hotkey = "invalid hotkey"
	} else {
		frontend.Hotkey = hk.String()
	}

	return frontend, nil
}

func (s *SettingsService) UpdateSettingsFromFrontend(raw map[string]interface{}) error {
	hotkeyStr, ok := raw["hotkey"].(string)
	if !ok {
		return fmt.Errorf("hotkey must be a string")
	}
	hotkeyCfg, err := ParseHotkeyString(hotkeyStr)
	if err != nil {
		return fmt.Errorf("invalid hotkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	values := map[string]string{KeyHotkey: hotkeyCfg.String()}
	if theme, ok := raw["theme"].(string); ok && theme != "" {
		values[KeyTheme] = theme
	}
	if show, ok := raw["show_word_count"].(bool); ok {
		values[KeyShowWordCount] = strconv.FormatBool(show)
	}

	for key, value := range values {
		if err := s.store.SetSetting(ctx, key, value); err != nil {
			return err
		}
	}

	if launch, ok := raw["launch_on_startup"].(bool); ok {
		if err := s.store.SetSetting(ctx, KeyLaunchOnStartup, strconv.FormatBool(launch)); err != nil {
			return err
		}
		s.syncLaunchAtLogin(launch)
	}

	if s.app != nil {
		s.app.EmitEvent(EventSettingsUpdated, map[string]any{
			"theme":  values[KeyTheme],
			"hotkey": values[KeyHotkey],
		})
	}
	return nil
}

func (s *SettingsService) syncLaunchAtLogin(enabled bool) {
	if s.startup == nil || s.startup.IsEnabled() == enabled {
		return
	}
	var err error
	if enabled {
		err = s.startup.EnableLaunchAtLogin()
	} else {
		err = s.startup.DisableLaunchAtLogin()
	}
	if err != nil {
		s.logger.Warn("failed to update launch at login", "enabled", enabled, "error", err)
	}
}
