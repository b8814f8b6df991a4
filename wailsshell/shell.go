// Package wailsshell runs the window core on top of Wails v3.
package wailsshell

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/imjamesonzeller/stickynotes/windows"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
)

// EventNavigated is emitted by the frontend router with {label, url}.
const EventNavigated = "Frontend:Navigated"

type Shell struct {
	app    *application.App
	logger *slog.Logger

	mu         sync.RWMutex
	dispatcher windows.Dispatcher
}

func New(app *application.App, logger *slog.Logger) *Shell {
	return &Shell{app: app, logger: logger}
}

// Bind routes native events to d and runs ready once the application has
// started.
func (s *Shell) Bind(d windows.Dispatcher, ready func() error) {
	s.mu.Lock()
	s.dispatcher = d
	s.mu.Unlock()

	s.app.OnApplicationEvent(events.Common.ApplicationStarted, func(_ *application.ApplicationEvent) {
		if err := ready(); err != nil {
			s.logger.Error("failed to open the main window", "error", err)
		}
	})

	s.app.OnEvent(EventNavigated, func(e *application.CustomEvent) {
		nav, err := decodeNavigation(e.Data)
		if err != nil {
			s.logger.Debug("ignoring navigation event", "error", err)
			return
		}
		s.dispatch(windows.Event{Label: nav.Label, Kind: windows.EventNavigation, URL: nav.URL})
	})
}

func (s *Shell) Build(opts windows.NativeOptions) (w windows.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("wails: %v", r)
		}
	}()

	native := s.app.NewWebviewWindowWithOptions(webviewOptions(opts))
	if native == nil {
		return nil, errors.New("wails returned no window")
	}

	win := &window{label: opts.Label, native: native}
	s.attach(win)
	return win, nil
}

func (s *Shell) attach(win *window) {
	label := win.label

	// Hooks run before listeners, so the close request is seen while the
	// window still answers geometry queries.
	win.native.RegisterHook(events.Common.WindowClosing, func(_ *application.WindowEvent) {
		s.dispatch(windows.Event{Label: label, Kind: windows.EventCloseRequested})
	})
	win.native.OnWindowEvent(events.Common.WindowClosing, func(_ *application.WindowEvent) {
		win.destroyed.Store(true)
		s.dispatch(windows.Event{Label: label, Kind: windows.EventDestroyed})
	})
	win.native.OnWindowEvent(events.Common.WindowFocus, func(_ *application.WindowEvent) {
		s.dispatch(windows.Event{Label: label, Kind: windows.EventFocused, Focused: true})
	})
	win.native.OnWindowEvent(events.Common.WindowLostFocus, func(_ *application.WindowEvent) {
		s.dispatch(windows.Event{Label: label, Kind: windows.EventFocused, Focused: false})
	})
}

func (s *Shell) dispatch(ev windows.Event) {
	s.mu.RLock()
	d := s.dispatcher
	s.mu.RUnlock()
	if d == nil {
		s.logger.Debug("dropping window event before bind", "label", ev.Label, "kind", ev.Kind.String())
		return
	}
	d.Dispatch(ev)
}

type navigation struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// decodeNavigation accepts the payload either bare or wrapped in the
// argument list the runtime sometimes delivers.
func decodeNavigation(data any) (navigation, error) {
	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return navigation{}, errors.New("empty navigation payload")
		}
		data = list[0]
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return navigation{}, err
	}
	var nav navigation
	if err := json.Unmarshal(raw, &nav); err != nil {
		return navigation{}, fmt.Errorf("decode navigation: %w", err)
	}
	if nav.Label == "" {
		return navigation{}, errors.New("navigation without window label")
	}
	return nav, nil
}
