package windows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ShouldSave reports whether closing label persists the home window geometry.
// count is the number of open windows when the close is requested, the
// closing window included.
func ShouldSave(label string, count int) bool {
	l, ok := ParseLabel(label)
	if !ok || l.String() != label {
		return false
	}
	return l.Kind() != LabelSecondary &&
		!(count > 1) &&
		l == FirstPrimary
}

// Persistence restores the first primary window's geometry at startup and
// saves it when that window is the last one closing.
type Persistence struct {
	registry *Registry
	store    GeometryStore
	tasks    *Tasks
	logger   *slog.Logger

	restoreOnce sync.Once
}

func NewPersistence(registry *Registry, store GeometryStore, tasks *Tasks, logger *slog.Logger) *Persistence {
	return &Persistence{
		registry: registry,
		store:    store,
		tasks:    tasks,
		logger:   logger,
	}
}

// Restore applies the stored geometry to win in the background. Only the
// first call per Persistence does anything.
func (p *Persistence) Restore(win Window) {
	p.restoreOnce.Do(func() {
		p.tasks.Go("restore geometry", func(context.Context) error {
			if err := p.restore(win); err != nil {
				if errors.Is(err, ErrNoGeometry) {
					p.logger.Debug("no saved window geometry", "label", win.Label())
				} else {
					p.logger.Error("failed to restore window geometry", "label", win.Label(), "error", err)
				}
				return nil
			}
			p.logger.Debug("restored window geometry", "label", win.Label())
			return nil
		})
	})
}

func (p *Persistence) restore(win Window) error {
	geom, err := p.store.Load()
	if err != nil {
		return err
	}
	if err := win.SetSize(geom.Size); err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	if err := win.SetPosition(geom.Position); err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	return nil
}

// CloseRequested runs the save decision for label against the registry as it
// is right now.
func (p *Persistence) CloseRequested(label string) {
	count := p.registry.Count()
	if !ShouldSave(label, count) {
		p.logger.Debug("skipping window state save", "label", label, "open", count)
		return
	}

	win, ok := p.registry.Lookup(label)
	if !ok {
		p.logger.Warn("window to save is not registered", "label", label)
		return
	}
	geom, err := capture(win)
	if err != nil {
		p.logger.Warn("failed to read window geometry", "label", label, "error", err)
		return
	}

	p.tasks.Go("save geometry", func(context.Context) error {
		if err := p.store.Save(geom); err != nil {
			p.logger.Warn("failed to save window state", "error", err)
			return nil
		}
		p.logger.Debug("window state saved", "label", label)
		return nil
	})
}

func capture(win Window) (Geometry, error) {
	pos, err := win.Position()
	if err != nil {
		return Geometry{}, err
	}
	size, err := win.Size()
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Position: pos, Size: size}, nil
}
