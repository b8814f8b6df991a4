package wailsshell

import (
	"sync/atomic"

	"github.com/imjamesonzeller/stickynotes/windows"
	"github.com/wailsapp/wails/v3/pkg/application"
)

// window adapts a WebviewWindow to windows.Window. Once destroyed, actions
// become no-ops and geometry reads fail.
type window struct {
	label     string
	native    *application.WebviewWindow
	destroyed atomic.Bool
}

func (w *window) Label() string { return w.label }

func (w *window) Focus() error {
	if w.destroyed.Load() {
		return nil
	}
	w.native.Focus()
	return nil
}

func (w *window) Close() error {
	if w.destroyed.Load() {
		return nil
	}
	w.native.Close()
	return nil
}

func (w *window) Position() (windows.Position, error) {
	if w.destroyed.Load() {
		return windows.Position{}, windows.ErrWindowNotFound
	}
	x, y := w.native.RelativePosition()
	return windows.Position{X: float64(x), Y: float64(y)}, nil
}

func (w *window) Size() (windows.Size, error) {
	if w.destroyed.Load() {
		return windows.Size{}, windows.ErrWindowNotFound
	}
	width, height := w.native.Size()
	return windows.Size{Width: float64(width), Height: float64(height)}, nil
}

func (w *window) SetPosition(p windows.Position) error {
	if w.destroyed.Load() {
		return windows.ErrWindowNotFound
	}
	w.native.SetRelativePosition(pixels(p.X), pixels(p.Y))
	return nil
}

func (w *window) SetSize(s windows.Size) error {
	if w.destroyed.Load() {
		return windows.ErrWindowNotFound
	}
	w.native.SetSize(pixels(s.Width), pixels(s.Height))
	return nil
}
