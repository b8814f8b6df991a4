package main

import (
	"errors"
	"testing"
)

type stubOpener struct {
	calls int
	err   error
}

func (o *stubOpener) NewNote() error {
	o.calls++
	return o.err
}

func TestHotkeyPressOpensNoteAndNotifies(t *testing.T) {
	opener := &stubOpener{}
	app := &recordingApp{}
	focused := 0

	svc := NewHotkeyService(opener, nil, discard())
	svc.SetApp(app)
	svc.focus = func() { focused++ }

	svc.handlePressed()

	if opener.calls != 1 || focused != 1 {
		t.Fatalf("opens %d focuses %d", opener.calls, focused)
	}
	if len(app.events) != 1 || app.events[0] != EventGlobalHotkey {
		t.Fatalf("unexpected events %v", app.events)
	}
}

func TestHotkeyPressFailureSkipsFocus(t *testing.T) {
	opener := &stubOpener{err: errors.New("build failed")}
	app := &recordingApp{}
	focused := 0

	svc := NewHotkeyService(opener, nil, discard())
	svc.SetApp(app)
	svc.focus = func() { focused++ }

	svc.handlePressed()

	if focused != 0 || len(app.events) != 0 {
		t.Fatalf("nothing should follow a failed open: focuses %d events %v", focused, app.events)
	}
}
