package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/imjamesonzeller/stickynotes/notestore"
)

const (
	EventNotesChanged = "Backend:NotesChanged"

	noteTimeout = 10 * time.Second
)

type noteStore interface {
	List(ctx context.Context) ([]notestore.Note, error)
	Get(ctx context.Context, id string) (notestore.Note, error)
	Upsert(ctx context.Context, note notestore.Note) (notestore.Note, error)
	Delete(ctx context.Context, id string) error
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

type eventEmitter interface {
	EmitEvent(name string, data ...any)
}

type NoteService struct {
	store  noteStore
	app    eventEmitter
	logger *slog.Logger
}

func NewNoteService(store noteStore, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

func (s *NoteService) SetApp(app eventEmitter) {
	s.app = app
}

func (s *NoteService) ListNotes() ([]notestore.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()
	return s.store.List(ctx)
}

// GetNote returns nil when id is unknown.
func (s *NoteService) GetNote(id string) (*notestore.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()

	note, err := s.store.Get(ctx, id)
	if errors.Is(err, notestore.ErrNoteNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) UpsertNote(note notestore.Note) (notestore.Note, error) {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()

	saved, err := s.store.Upsert(ctx, note)
	if err != nil {
		s.logger.Warn("failed to save note", "id", note.ID, "error", err)
		return notestore.Note{}, err
	}
	s.changed(saved.ID)
	return saved, nil
}

func (s *NoteService) DeleteNote(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to delete note", "id", id, "error", err)
		return err
	}
	s.changed(id)
	return nil
}

// GetSetting returns nil when key has never been set.
func (s *NoteService) GetSetting(key string) (*string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()

	value, found, err := s.store.GetSetting(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	return &value, nil
}

func (s *NoteService) SetSetting(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), noteTimeout)
	defer cancel()
	return s.store.SetSetting(ctx, key, value)
}

func (s *NoteService) changed(id string) {
	if s.app != nil {
		s.app.EmitEvent(EventNotesChanged, id)
	}
}
