package windows

import (
	"fmt"
	"log/slog"
	"sync"
)

const (
	DefaultMainTitle = "Sticky Notes"

	DefaultWindowWidth  = 400.0
	DefaultWindowHeight = 700.0
	MinWindowWidth      = 400.0
	MinWindowHeight     = 400.0
	MaxWindowWidth      = 700.0

	fallbackWidth  = 600.0
	fallbackHeight = 600.0
)

// DefaultMainPosition is used for primary windows opened without a position.
var DefaultMainPosition = Position{X: 100, Y: 100}

// Config describes a window to create. Zero max bounds mean unbounded.
type Config struct {
	Label        string
	URL          string
	Title        string
	Size         *Size
	Position     *Position
	MaxWidth     float64
	MaxHeight    float64
	HideTitlebar bool
	AlwaysOnTop  bool

	// Navigate receives every navigation target; navigation is never blocked.
	Navigate chan<- string
	// CloseRequested is signalled on close requests; the close still happens.
	CloseRequested chan<- struct{}
}

type Factory struct {
	mu       sync.Mutex
	shell    Shell
	chrome   Chrome
	registry *Registry
	router   *Router
	logger   *slog.Logger

	pmu     sync.Mutex
	pending map[string]chan struct{}
}

func NewFactory(shell Shell, chrome Chrome, registry *Registry, router *Router, logger *slog.Logger) *Factory {
	return &Factory{
		shell:    shell,
		chrome:   chrome,
		registry: registry,
		router:   router,
		logger:   logger,
		pending:  make(map[string]chan struct{}),
	}
}

// Create builds the window described by cfg, or focuses and returns the
// window already registered under cfg.Label. A non-nil parent centres the new
// window over it.
func (f *Factory) Create(cfg Config, parent Window) (Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.create(cfg, parent)
}

// CreateMain opens the next free primary window.
func (f *Factory) CreateMain(url string, size *Size, position *Position) (Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if size == nil {
		size = &Size{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	if position == nil {
		p := DefaultMainPosition
		position = &p
	}

	cfg := Config{
		Label:        AllocatePrimary(f.registry.labelSet()).String(),
		URL:          url,
		Title:        DefaultMainTitle,
		Size:         size,
		Position:     position,
		MaxWidth:     MaxWindowWidth,
		HideTitlebar: true,
		AlwaysOnTop:  true,
	}
	return f.create(cfg, nil)
}

// CreateChild opens a secondary window over parent and links the pair in the
// router before returning.
func (f *Factory) CreateChild(parent Window, url, name, title string, size Size) (Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg := Config{
		Label:        Secondary(name).String(),
		URL:          url,
		Title:        title,
		Size:         &size,
		HideTitlebar: true,
	}
	child, err := f.create(cfg, parent)
	if err != nil {
		return nil, err
	}
	f.router.Link(parent.Label(), child.Label())
	return child, nil
}

func (f *Factory) create(cfg Config, parent Window) (Window, error) {
	if existing, ok := f.registry.Lookup(cfg.Label); ok {
		f.logger.Debug("window already exists, focusing", "label", cfg.Label)
		if err := existing.Focus(); err != nil {
			f.logger.Debug("focus existing window", "label", cfg.Label, "error", err)
		}
		return existing, nil
	}

	opts, err := f.resolve(cfg, parent)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("creating window", "label", cfg.Label, "url", cfg.URL, "chrome", f.chrome.Name())

	done := f.markPending(cfg.Label)
	defer done()

	win, err := f.shell.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBuildFailed, cfg.Label, err)
	}

	f.registry.insert(win)
	f.router.Observe(cfg.Label, cfg.Navigate, cfg.CloseRequested)
	return win, nil
}

func (f *Factory) resolve(cfg Config, parent Window) (NativeOptions, error) {
	opts := NativeOptions{
		Label:       cfg.Label,
		URL:         cfg.URL,
		Title:       cfg.Title,
		Size:        Size{Width: fallbackWidth, Height: fallbackHeight},
		MinSize:     Size{Width: MinWindowWidth, Height: MinWindowHeight},
		AlwaysOnTop: cfg.AlwaysOnTop,
		Resizable:   true,
	}
	if cfg.Size != nil {
		opts.Size = *cfg.Size
	}

	switch {
	case parent != nil:
		pos, err := childPosition(parent, opts.Size)
		if err != nil {
			return NativeOptions{}, err
		}
		opts.Position = pos
	case cfg.Position != nil:
		opts.Position = *cfg.Position
	default:
		opts.Centered = true
	}

	opts.MaxSize = maxBounds(cfg.MaxWidth, cfg.MaxHeight)
	f.chrome.Decorate(&opts, cfg.HideTitlebar)
	return opts, nil
}

// childPosition centres a window of the given size over parent.
func childPosition(parent Window, size Size) (Position, error) {
	pos, err := parent.Position()
	if err != nil {
		return Position{}, fmt.Errorf("parent %s position: %w", parent.Label(), err)
	}
	psize, err := parent.Size()
	if err != nil {
		return Position{}, fmt.Errorf("parent %s size: %w", parent.Label(), err)
	}
	return Position{
		X: pos.X + psize.Width/2 - size.Width/2,
		Y: pos.Y + psize.Height/2 - size.Height/2,
	}, nil
}

func maxBounds(width, height float64) *Size {
	if width <= 0 && height <= 0 {
		return nil
	}
	bounds := Size{Width: Unbounded, Height: Unbounded}
	if width > 0 {
		bounds.Width = width
	}
	if height > 0 {
		bounds.Height = height
	}
	return &bounds
}

func (f *Factory) markPending(label string) func() {
	ch := make(chan struct{})
	f.pmu.Lock()
	f.pending[label] = ch
	f.pmu.Unlock()
	return func() {
		f.pmu.Lock()
		delete(f.pending, label)
		f.pmu.Unlock()
		close(ch)
	}
}

// awaitSettled blocks while label is being built so no event about a window
// is handled before it is registered.
func (f *Factory) awaitSettled(label string) {
	f.pmu.Lock()
	ch, ok := f.pending[label]
	f.pmu.Unlock()
	if ok {
		<-ch
	}
}
