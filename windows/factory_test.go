package windows

import (
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
)

func TestCreateMainAssignsSequentialLabels(t *testing.T) {
	c, _ := newTestController(t, nil)

	for i, want := range []string{"main_0", "main_1", "main_2"} {
		w, err := c.NewMainWindow("/", nil, nil)
		if err != nil {
			t.Fatalf("window %d: %v", i, err)
		}
		if w.Label() != want {
			t.Fatalf("window %d: got %s want %s", i, w.Label(), want)
		}
	}
	if c.Registry().Count() != 3 {
		t.Fatalf("expected 3 registered windows, got %d", c.Registry().Count())
	}
}

func TestCreateMainDefaults(t *testing.T) {
	c, _ := newTestController(t, nil)

	w := mustFake(t)(c.NewMainWindow("/", nil, nil))

	if w.opts.Size != (Size{Width: DefaultWindowWidth, Height: DefaultWindowHeight}) {
		t.Fatalf("unexpected size %+v", w.opts.Size)
	}
	if w.opts.Position != DefaultMainPosition || w.opts.Centered {
		t.Fatalf("unexpected position %+v centered=%v", w.opts.Position, w.opts.Centered)
	}
	if w.opts.Title != DefaultMainTitle || !w.opts.AlwaysOnTop {
		t.Fatalf("unexpected title/on-top %q %v", w.opts.Title, w.opts.AlwaysOnTop)
	}
	if w.opts.MaxSize == nil || w.opts.MaxSize.Width != MaxWindowWidth || !math.IsInf(w.opts.MaxSize.Height, 1) {
		t.Fatalf("unexpected max size %+v", w.opts.MaxSize)
	}
	if w.opts.MinSize != (Size{Width: MinWindowWidth, Height: MinWindowHeight}) {
		t.Fatalf("unexpected min size %+v", w.opts.MinSize)
	}
}

func TestCreateFallsBackToCenteredDefaultSize(t *testing.T) {
	c, _ := newTestController(t, nil)

	w := mustFake(t)(c.factory.Create(Config{Label: "main_7", URL: "/"}, nil))

	if w.opts.Size != (Size{Width: 600, Height: 600}) {
		t.Fatalf("expected fallback size, got %+v", w.opts.Size)
	}
	if !w.opts.Centered {
		t.Fatalf("expected centered window")
	}
	if w.opts.MaxSize != nil {
		t.Fatalf("expected no max size, got %+v", w.opts.MaxSize)
	}
}

func TestCreateExistingLabelFocusesInstead(t *testing.T) {
	c, shell := newTestController(t, nil)

	first := mustFake(t)(c.factory.Create(Config{Label: "other_browse"}, nil))
	second, err := c.factory.Create(Config{Label: "other_browse", Title: "ignored"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second != Window(first) {
		t.Fatalf("expected the existing handle back")
	}
	if shell.buildCount() != 1 {
		t.Fatalf("expected one native window, got %d", shell.buildCount())
	}
	if first.focuses() != 1 {
		t.Fatalf("expected one focus on the existing window, got %d", first.focuses())
	}
}

func TestConcurrentDuplicateCreateBuildsOnce(t *testing.T) {
	c, shell := newTestController(t, nil)

	const n = 16
	results := make([]Window, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := c.factory.Create(Config{Label: "other_race"}, nil)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			results[i] = w
		}(i)
	}
	wg.Wait()

	if shell.buildCount() != 1 {
		t.Fatalf("expected exactly one build, got %d", shell.buildCount())
	}
	winner := shell.built[0]
	for i, w := range results {
		if w != Window(winner) {
			t.Fatalf("result %d is not the winning window", i)
		}
	}
	if winner.focuses() != n-1 {
		t.Fatalf("expected %d focus actions, got %d", n-1, winner.focuses())
	}
}

func TestConcurrentCreateMainLabelsAreUnique(t *testing.T) {
	c, _ := newTestController(t, nil)

	const n = 10
	var (
		mu     sync.Mutex
		labels []string
		wg     sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := c.NewMainWindow("/", nil, nil)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			mu.Lock()
			labels = append(labels, w.Label())
			mu.Unlock()
		}()
	}
	wg.Wait()

	set := make(map[string]struct{})
	for _, l := range labels {
		set[l] = struct{}{}
	}
	if len(set) != n {
		t.Fatalf("expected %d distinct labels, got %v", n, labels)
	}
	for i := 0; i < n; i++ {
		if _, ok := set[Primary(i).String()]; !ok {
			sort.Strings(labels)
			t.Fatalf("missing %s in %v", Primary(i), labels)
		}
	}
}

func TestCreateChildCentresOverParent(t *testing.T) {
	c, _ := newTestController(t, nil)

	parent := mustFake(t)(c.NewMainWindow("/", nil, &Position{X: 100, Y: 100}))
	child := mustFake(t)(c.NewChildWindow(parent.Label(), "/browse", "browse", "Browse", Size{Width: 300, Height: 200}))

	want := Position{X: 100 + 400/2 - 300/2, Y: 100 + 700/2 - 200/2}
	if child.opts.Position != want || child.opts.Centered {
		t.Fatalf("got %+v want %+v", child.opts.Position, want)
	}
	if child.Label() != "other_browse" {
		t.Fatalf("unexpected child label %s", child.Label())
	}
}

func TestCreateChildUnknownParent(t *testing.T) {
	c, shell := newTestController(t, nil)

	_, err := c.NewChildWindow("main_4", "/", "x", "X", Size{Width: 10, Height: 10})
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound, got %v", err)
	}
	if shell.buildCount() != 0 {
		t.Fatalf("nothing should be built")
	}
}

func TestCreateBuildFailurePropagates(t *testing.T) {
	c, shell := newTestController(t, nil)
	shell.buildErr = errNative

	_, err := c.NewMainWindow("/", nil, nil)
	if !errors.Is(err, ErrBuildFailed) || !errors.Is(err, errNative) {
		t.Fatalf("expected build failure wrapping the native error, got %v", err)
	}
	if c.Registry().Count() != 0 {
		t.Fatalf("failed window must not be registered")
	}

	shell.buildErr = nil
	w, err := c.NewMainWindow("/", nil, nil)
	if err != nil || w.Label() != "main_0" {
		t.Fatalf("expected main_0 after failure, got %v %v", w, err)
	}
}

func TestMaxBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height float64
		want          *Size
	}{
		{name: "none", want: nil},
		{name: "width only", width: 700, want: &Size{Width: 700, Height: Unbounded}},
		{name: "height only", height: 500, want: &Size{Width: Unbounded, Height: 500}},
		{name: "both", width: 700, height: 500, want: &Size{Width: 700, Height: 500}},
	}

	for _, tc := range tests {
		got := maxBounds(tc.width, tc.height)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%s: expected nil, got %+v", tc.name, got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestChromeStrategies(t *testing.T) {
	t.Parallel()

	mac := ChromeFor("darwin")
	var opts NativeOptions
	mac.Decorate(&opts, true)
	if opts.Titlebar != TitlebarOverlay || !opts.HiddenTitle {
		t.Fatalf("mac chrome should overlay the titlebar: %+v", opts)
	}

	opts = NativeOptions{}
	mac.Decorate(&opts, false)
	if opts.Titlebar != TitlebarNative || opts.HiddenTitle {
		t.Fatalf("mac chrome without hidden titlebar should stay native: %+v", opts)
	}

	for _, goos := range []string{"linux", "windows"} {
		opts = NativeOptions{}
		ChromeFor(goos).Decorate(&opts, true)
		if opts.Titlebar != TitlebarNative || opts.HiddenTitle {
			t.Fatalf("%s chrome should keep the native titlebar: %+v", goos, opts)
		}
	}
}
