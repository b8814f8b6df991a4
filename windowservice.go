package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/imjamesonzeller/stickynotes/windows"
)

const (
	quitGrace    = 2 * time.Second
	quitInterval = 20 * time.Millisecond
)

var errWindowsNotReady = errors.New("window controller not initialised")

type windowController interface {
	NewMainWindow(url string, size *windows.Size, position *windows.Position) (windows.Window, error)
	NewChildWindow(parentLabel, url, name, title string, size windows.Size) (windows.Window, error)
	Registry() *windows.Registry
	CloseAll()
	Wait()
}

// WindowService is the frontend's handle on the window core. Errors reach the
// frontend as rejected promises carrying the message.
type WindowService struct {
	controller windowController
	quit       func()
	logger     *slog.Logger
}

func NewWindowService(logger *slog.Logger) *WindowService {
	return &WindowService{logger: logger}
}

func (s *WindowService) SetController(c windowController) {
	s.controller = c
}

// SetQuit injects the function that ends the process after QuitAll.
func (s *WindowService) SetQuit(quit func()) {
	s.quit = quit
}

// NewMainWindow opens the next primary window and returns its label.
func (s *WindowService) NewMainWindow(url string, size *windows.Size, position *windows.Position) (string, error) {
	if s.controller == nil {
		return "", errWindowsNotReady
	}
	if url == "" {
		url = "/"
	}
	w, err := s.controller.NewMainWindow(url, size, position)
	if err != nil {
		s.logger.Warn("failed to open main window", "url", url, "error", err)
		return "", err
	}
	return w.Label(), nil
}

// NewChildWindow opens, or focuses, the secondary window name bound to parentLabel.
func (s *WindowService) NewChildWindow(parentLabel, url, name, title string, size windows.Size) (string, error) {
	if s.controller == nil {
		return "", errWindowsNotReady
	}
	w, err := s.controller.NewChildWindow(parentLabel, url, name, title, size)
	if err != nil {
		s.logger.Warn("failed to open child window", "parent", parentLabel, "name", name, "error", err)
		return "", err
	}
	return w.Label(), nil
}

func (s *WindowService) NewNote() error {
	_, err := s.NewMainWindow("/", nil, nil)
	return err
}

func (s *WindowService) CloseAll() {
	if s.controller == nil {
		return
	}
	s.controller.CloseAll()
}

// QuitAll closes every window through its own close request, waits for the
// resulting saves, then quits. It blocks, so UI callbacks run it on a
// goroutine.
func (s *WindowService) QuitAll() {
	if s.controller != nil {
		s.controller.CloseAll()
		s.waitClosed(quitGrace)
		s.controller.Wait()
	}
	if s.quit != nil {
		s.quit()
	}
}

func (s *WindowService) waitClosed(grace time.Duration) {
	deadline := time.Now().Add(grace)
	for s.controller.Registry().Count() > 0 {
		if time.Now().After(deadline) {
			s.logger.Warn("windows still open at quit", "labels", s.controller.Registry().Labels())
			return
		}
		time.Sleep(quitInterval)
	}
}
