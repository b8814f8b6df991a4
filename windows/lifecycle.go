package windows

import (
	"context"
	"fmt"
	"log/slog"
)

type Options struct {
	Shell     Shell
	Chrome    Chrome
	Store     GeometryStore
	Menu      MenuBuilder
	Logger    *slog.Logger
	TaskLimit int64
}

// Controller is the composition root of the window core. It routes ready and
// window events to the factory, router and persistence.
type Controller struct {
	registry    *Registry
	factory     *Factory
	router      *Router
	persistence *Persistence
	tasks       *Tasks
	menu        MenuBuilder
	logger      *slog.Logger
}

func NewController(ctx context.Context, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	chrome := opts.Chrome
	if chrome == nil {
		chrome = plainChrome{}
	}

	registry := NewRegistry()
	tasks := NewTasks(ctx, opts.TaskLimit, logger)
	router := NewRouter(registry, tasks, logger)

	return &Controller{
		registry:    registry,
		factory:     NewFactory(opts.Shell, chrome, registry, router, logger),
		router:      router,
		persistence: NewPersistence(registry, opts.Store, tasks, logger),
		tasks:       tasks,
		menu:        opts.Menu,
		logger:      logger,
	}
}

func (c *Controller) Registry() *Registry { return c.registry }

func (c *Controller) Router() *Router { return c.router }

// Ready installs the menu, opens the first primary window and starts
// restoring its geometry. Only a failure to open the window is returned.
func (c *Controller) Ready() error {
	c.logger.Debug("application is ready, creating main window")

	if c.menu != nil {
		if err := c.menu.BuildMenu(); err != nil {
			c.logger.Warn("failed to build application menu", "error", err)
		}
	}

	win, err := c.factory.CreateMain("/", nil, nil)
	if err != nil {
		return fmt.Errorf("create main window: %w", err)
	}
	// A window opened before ready already holds the home label.
	if win.Label() != FirstPrimary.String() {
		c.logger.Debug("home window already open, skipping restore", "label", win.Label())
		return nil
	}
	c.persistence.Restore(win)
	return nil
}

func (c *Controller) Dispatch(ev Event) {
	c.factory.awaitSettled(ev.Label)

	switch ev.Kind {
	case EventFocused:
		if ev.Focused {
			c.logger.Debug("window focused", "label", ev.Label)
		}
		c.router.Route(ev)
	case EventCloseRequested:
		c.logger.Debug("window close requested", "label", ev.Label)
		c.persistence.CloseRequested(ev.Label)
		c.router.Route(ev)
	case EventDestroyed:
		c.router.Route(ev)
		c.registry.remove(ev.Label)
		c.router.Forget(ev.Label)
	case EventNavigation:
		c.router.Route(ev)
	}
}

// NewMainWindow opens the next free primary window.
func (c *Controller) NewMainWindow(url string, size *Size, position *Position) (Window, error) {
	return c.factory.CreateMain(url, size, position)
}

// NewChildWindow opens (or focuses) the secondary window name bound to parentLabel.
func (c *Controller) NewChildWindow(parentLabel, url, name, title string, size Size) (Window, error) {
	parent, ok := c.registry.Lookup(parentLabel)
	if !ok {
		return nil, fmt.Errorf("parent %s: %w", parentLabel, ErrWindowNotFound)
	}
	return c.factory.CreateChild(parent, url, name, title, size)
}

// CloseAll asks every open window to close so each goes through its own
// close request.
func (c *Controller) CloseAll() {
	for _, w := range c.registry.Snapshot() {
		c.logger.Debug("closing window", "label", w.Label())
		if err := w.Close(); err != nil {
			c.logger.Debug("close window", "label", w.Label(), "error", err)
		}
	}
}

// Wait blocks until background persistence and notification work is done.
func (c *Controller) Wait() {
	c.tasks.Wait()
}
