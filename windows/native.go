package windows

import (
	"errors"
	"math"
)

var (
	ErrWindowNotFound = errors.New("window not found")
	ErrBuildFailed    = errors.New("native window construction failed")
	ErrNoGeometry     = errors.New("no persisted window geometry")
)

// Unbounded marks a max-size axis without a limit.
var Unbounded = math.Inf(1)

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Geometry struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// Window is a handle to a live native window. Implementations must treat
// calls on a destroyed window as no-ops.
type Window interface {
	Label() string
	Focus() error
	Close() error
	Position() (Position, error)
	Size() (Size, error)
	SetPosition(Position) error
	SetSize(Size) error
}

type TitlebarStyle int

const (
	TitlebarNative TitlebarStyle = iota
	TitlebarOverlay
)

// NativeOptions is the fully resolved description handed to a Shell.
type NativeOptions struct {
	Label       string
	URL         string
	Title       string
	Size        Size
	MinSize     Size
	MaxSize     *Size
	Position    Position
	Centered    bool
	AlwaysOnTop bool
	Resizable   bool
	Titlebar    TitlebarStyle
	HiddenTitle bool
}

// Shell builds native windows. Build must not deliver events for the new
// window synchronously.
type Shell interface {
	Build(opts NativeOptions) (Window, error)
}

type EventKind int

const (
	EventNavigation EventKind = iota
	EventCloseRequested
	EventFocused
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventNavigation:
		return "navigation"
	case EventCloseRequested:
		return "close-requested"
	case EventFocused:
		return "focused"
	case EventDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Event is a lifecycle notification about one window.
type Event struct {
	Label   string
	Kind    EventKind
	Focused bool
	URL     string
}

// Dispatcher receives window events from a Shell.
type Dispatcher interface {
	Dispatch(ev Event)
}

// GeometryStore persists the single geometry record of the first primary window.
type GeometryStore interface {
	Load() (Geometry, error)
	Save(Geometry) error
}

// MenuBuilder installs the application menu once at startup.
type MenuBuilder interface {
	BuildMenu() error
}
