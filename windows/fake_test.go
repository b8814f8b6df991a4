package windows

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

type fakeWindow struct {
	shell *fakeShell
	label string
	opts  NativeOptions

	mu          sync.Mutex
	pos         Position
	size        Size
	focusCount  int
	closeCount  int
	destroyed   bool
	geometryErr error
}

func (w *fakeWindow) Label() string { return w.label }

func (w *fakeWindow) Focus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil
	}
	w.focusCount++
	return nil
}

// Close mimics the native sequence: a close request while the window is still
// alive, then the destroy notification.
func (w *fakeWindow) Close() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return nil
	}
	w.closeCount++
	w.mu.Unlock()

	d := w.shell.dispatcher()
	if d != nil {
		d.Dispatch(Event{Label: w.label, Kind: EventCloseRequested})
	}

	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()

	if d != nil {
		d.Dispatch(Event{Label: w.label, Kind: EventDestroyed})
	}
	return nil
}

func (w *fakeWindow) Position() (Position, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos, w.geometryErr
}

func (w *fakeWindow) Size() (Size, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size, w.geometryErr
}

func (w *fakeWindow) SetPosition(p Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pos = p
	return nil
}

func (w *fakeWindow) SetSize(s Size) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = s
	return nil
}

func (w *fakeWindow) focuses() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focusCount
}

func (w *fakeWindow) isDestroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

func (w *fakeWindow) geometry() Geometry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Geometry{Position: w.pos, Size: w.size}
}

var centeredPosition = Position{X: 500, Y: 300}

type fakeShell struct {
	mu       sync.Mutex
	built    []*fakeWindow
	buildErr error
	d        Dispatcher
}

func (s *fakeShell) Build(opts NativeOptions) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	pos := opts.Position
	if opts.Centered {
		pos = centeredPosition
	}
	w := &fakeWindow{shell: s, label: opts.Label, opts: opts, pos: pos, size: opts.Size}
	s.built = append(s.built, w)
	return w, nil
}

func (s *fakeShell) setDispatcher(d Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d = d
}

func (s *fakeShell) dispatcher() Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d
}

func (s *fakeShell) buildCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.built)
}

type fakeStore struct {
	mu      sync.Mutex
	geom    *Geometry
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (s *fakeStore) Load() (Geometry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.loadErr != nil {
		return Geometry{}, s.loadErr
	}
	if s.geom == nil {
		return Geometry{}, ErrNoGeometry
	}
	return *s.geom, nil
}

func (s *fakeStore) Save(g Geometry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.geom = &g
	return nil
}

func (s *fakeStore) counts() (loads, saves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads, s.saves
}

type fakeMenu struct {
	err   error
	calls int
}

func (m *fakeMenu) BuildMenu() error {
	m.calls++
	return m.err
}

var errNative = errors.New("webview unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(t *testing.T, store *fakeStore) (*Controller, *fakeShell) {
	t.Helper()
	if store == nil {
		store = &fakeStore{}
	}
	shell := &fakeShell{}
	c := NewController(context.Background(), Options{
		Shell:  shell,
		Chrome: plainChrome{},
		Store:  store,
		Logger: discardLogger(),
	})
	shell.setDispatcher(c)
	t.Cleanup(c.Wait)
	return c, shell
}

// mustFake unwraps a (Window, error) creation result into the fake behind it.
func mustFake(t *testing.T) func(Window, error) *fakeWindow {
	t.Helper()
	return func(w Window, err error) *fakeWindow {
		t.Helper()
		if err != nil {
			t.Fatalf("create window: %v", err)
		}
		fw, ok := w.(*fakeWindow)
		if !ok {
			t.Fatalf("unexpected window type %T", w)
		}
		return fw
	}
}
