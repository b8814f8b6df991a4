package windowstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imjamesonzeller/stickynotes/windows"
)

const FileName = "window-state.json"

// record is the on-disk layout of the persisted geometry.
type record struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// File keeps the home window geometry in a JSON file.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

// Load returns windows.ErrNoGeometry when nothing was saved yet. A file that
// cannot be decoded is moved aside to <path>.corrupt-<unix> so the next save
// starts clean.
func (f *File) Load() (windows.Geometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return windows.Geometry{}, windows.ErrNoGeometry
	}
	if err != nil {
		return windows.Geometry{}, fmt.Errorf("read window state: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().Unix())
		if renameErr := os.Rename(f.path, backup); renameErr != nil {
			return windows.Geometry{}, errors.Join(fmt.Errorf("decode window state: %w", err), renameErr)
		}
		return windows.Geometry{}, fmt.Errorf("decode window state (moved to %s): %w", backup, err)
	}
	if rec.Width <= 0 || rec.Height <= 0 {
		return windows.Geometry{}, fmt.Errorf("invalid window size %vx%v", rec.Width, rec.Height)
	}

	return windows.Geometry{
		Position: windows.Position{X: rec.X, Y: rec.Y},
		Size:     windows.Size{Width: rec.Width, Height: rec.Height},
	}, nil
}

func (f *File) Save(g windows.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(record{
		X:      g.Position.X,
		Y:      g.Position.Y,
		Width:  g.Size.Width,
		Height: g.Size.Height,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode window state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write window state: %w", err)
	}
	return os.Rename(tmp, f.path)
}
