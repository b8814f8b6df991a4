package notestore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUpsertAssignsIDAndTimestamps(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	n, err := s.Upsert(ctx, Note{Content: `{"type":"doc"}`})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !strings.HasPrefix(n.ID, "note_") || len(n.ID) != len("note_")+10 {
		t.Fatalf("unexpected id %q", n.ID)
	}
	if n.Model != ModelNote {
		t.Fatalf("unexpected model %q", n.Model)
	}
	if !n.CreatedAt.Equal(fixed) || !n.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamps %v %v", n.CreatedAt, n.UpdatedAt)
	}
}

func TestUpsertExistingUpdatesContent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return created }
	n, err := s.Upsert(ctx, Note{Content: "first"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	later := created.Add(time.Hour)
	s.now = func() time.Time { return later }
	n.Content = "second"
	updated, err := s.Upsert(ctx, n)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Content != "second" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed: %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("updated_at not bumped: %v", updated.UpdatedAt)
	}
}

func TestListOrdersByMostRecentlyUpdated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		n, err := s.Upsert(ctx, Note{Content: "n"})
		if err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
		ids = append(ids, n.ID)
	}

	notes, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range []string{ids[2], ids[1], ids[0]} {
		if notes[i].ID != want {
			t.Fatalf("position %d: got %s want %s", i, notes[i].ID, want)
		}
	}
}

func TestGetAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "note_missing"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}

	n, err := s.Upsert(ctx, Note{Content: "bye"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, n.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected deleted note to be gone, got %v", err)
	}
	if err := s.Delete(ctx, n.ID); err != nil {
		t.Fatalf("deleting twice should not fail: %v", err)
	}
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, found, err := s.GetSetting(ctx, "showWordCount"); err != nil || found {
		t.Fatalf("expected missing setting, got found=%v err=%v", found, err)
	}

	if err := s.SetSetting(ctx, "showWordCount", "false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetSetting(ctx, "showWordCount", "true"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, found, err := s.GetSetting(ctx, "showWordCount")
	if err != nil || !found || v != "true" {
		t.Fatalf("got %q found=%v err=%v", v, found, err)
	}
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	n, err := s.Upsert(ctx, Note{Content: "kept"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	_ = s.Close()

	s2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	v, err := currentVersion(ctx, s2.db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != len(allMigrations) {
		t.Fatalf("expected version %d, got %d", len(allMigrations), v)
	}
	got, err := s2.Get(ctx, n.ID)
	if err != nil || got.Content != "kept" {
		t.Fatalf("note lost across reopen: %+v %v", got, err)
	}
}
