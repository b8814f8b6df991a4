package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/imjamesonzeller/stickynotes/settingsservice"
	"golang.design/x/hotkey"
)

const EventGlobalHotkey = "Backend:GlobalHotkeyEvent"

type noteOpener interface {
	NewNote() error
}

type HotkeyService struct {
	app     eventEmitter
	opener  noteOpener
	logger  *slog.Logger
	focus   func()
	hotkeys func() (settingsservice.HotkeyConfig, error)
}

func NewHotkeyService(opener noteOpener, hotkeys func() (settingsservice.HotkeyConfig, error), logger *slog.Logger) *HotkeyService {
	return &HotkeyService{
		opener:  opener,
		hotkeys: hotkeys,
		logger:  logger,
		focus:   focusAppWindow,
	}
}

func (s *HotkeyService) SetApp(app eventEmitter) {
	s.app = app
}

// StartHotkeyListener registers the new-note shortcut and serves it until ctx
// is done. It must run on a locked OS thread on macOS.
func (s *HotkeyService) StartHotkeyListener(ctx context.Context) {
	cfg, err := s.hotkeys()
	if err != nil {
		s.logger.Warn("no usable hotkey configured", "error", err)
		return
	}

	hk := hotkey.New(cfg.Modifiers, cfg.Key)
	if err := hk.Register(); err != nil {
		s.logger.Warn("failed to register hotkey", "hotkey", cfg.String(), "error", err)
		return
	}
	defer func() {
		if err := hk.Unregister(); err != nil {
			s.logger.Debug("failed to unregister hotkey", "error", err)
		}
	}()

	s.logger.Info("hotkey registered", "hotkey", cfg.String())

	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
			s.handlePressed()
		}
	}
}

func (s *HotkeyService) handlePressed() {
	if err := s.opener.NewNote(); err != nil {
		s.logger.Warn("hotkey: failed to open note window", "error", err)
		return
	}
	if s.focus != nil {
		s.focus()
	}
	if s.app != nil {
		s.app.EmitEvent(EventGlobalHotkey, time.Now().String())
	}
}
