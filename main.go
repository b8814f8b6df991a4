package main

import (
	"context"
	"embed"
	_ "embed"
	"fmt"
	"log"
	"runtime"

	"github.com/imjamesonzeller/stickynotes/config"
	"github.com/imjamesonzeller/stickynotes/logging"
	"github.com/imjamesonzeller/stickynotes/notestore"
	"github.com/imjamesonzeller/stickynotes/settingsservice"
	"github.com/imjamesonzeller/stickynotes/startupservice"
	"github.com/imjamesonzeller/stickynotes/tray"
	"github.com/imjamesonzeller/stickynotes/wailsshell"
	"github.com/imjamesonzeller/stickynotes/windows"
	"github.com/imjamesonzeller/stickynotes/windowstate"

	"github.com/wailsapp/wails/v3/pkg/application"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed frontend/public/tray-icon.png
var trayIcon []byte

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Load()

	logger, logFile := logging.New(logging.Options{Dir: cfg.LogDir, Debug: cfg.Debug})
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := notestore.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open note store: %w", err)
	}
	defer store.Close()

	// Initialize services
	startup := startupservice.NewStartupService()
	settingsService := settingsservice.NewSettingsService(store, startup, cfg.Hotkey, logger)
	windowService := NewWindowService(logger)
	noteService := NewNoteService(store, logger)
	hotkeyService := NewHotkeyService(windowService, settingsService.Hotkey, logger)

	app := application.New(application.Options{
		Name:        "Sticky Notes",
		Description: "Always-on-top sticky notes",
		Logger:      logger,
		Services: []application.Service{
			application.NewService(windowService),
			application.NewService(noteService),
			application.NewService(settingsService),
			application.NewService(hotkeyService),
		},
		Assets: application.AssetOptions{
			Handler: application.AssetFileServerFS(assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})
	// Notes live in the tray, not the dock
	hideAppFromDock()

	shell := wailsshell.New(app, logger)
	controller := windows.NewController(ctx, windows.Options{
		Shell:  shell,
		Chrome: windows.ChromeFor(runtime.GOOS),
		Store:  windowstate.NewFile(cfg.StatePath),
		Menu:   tray.NewAppMenu(app, windowService),
		Logger: logger,
	})

	// Inject app and window core into services
	windowService.SetController(controller)
	windowService.SetQuit(app.Quit)
	noteService.SetApp(app)
	settingsService.SetApp(app)
	hotkeyService.SetApp(app)

	// The first window opens once the application has started
	shell.Bind(controller, controller.Ready)

	go func() {
		runtime.LockOSThread() // <-- Required by macOS for hotkey
		hotkeyService.StartHotkeyListener(ctx)
	}()

	tray.Setup(app, windowService, trayIcon)

	logger.Info("starting", "data_dir", cfg.DataDir, "state", cfg.StatePath, "debug", cfg.Debug)

	// Run blocks until the application has been exited.
	err = app.Run()
	controller.Wait()
	return err
}
