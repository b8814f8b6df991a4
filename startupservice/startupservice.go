package startupservice

import (
	"os"

	"github.com/protonmail/go-autostart"
)

const (
	appName     = "StickyNotes"
	displayName = "Sticky Notes"
	fallbackExe = "/Applications/Sticky Notes.app/Contents/MacOS/stickynotes"
)

type StartupService struct {
	app *autostart.App
}

func NewStartupService() *StartupService {
	execPath, err := os.Executable()
	if err != nil {
		execPath = fallbackExe
	}

	return newStartupService(execPath)
}

func newStartupService(execPath string) *StartupService {
	return &StartupService{app: &autostart.App{
		Name:        appName,
		DisplayName: displayName,
		Exec:        []string{execPath},
	}}
}

func (s *StartupService) EnableLaunchAtLogin() error {
	return s.app.Enable()
}

func (s *StartupService) DisableLaunchAtLogin() error {
	return s.app.Disable()
}

func (s *StartupService) IsEnabled() bool {
	return s.app.IsEnabled()
}

// Sync brings the login item in line with the wanted state.
func (s *StartupService) Sync(enabled bool) error {
	if s.IsEnabled() == enabled {
		return nil
	}
	if enabled {
		return s.EnableLaunchAtLogin()
	}
	return s.DisableLaunchAtLogin()
}
