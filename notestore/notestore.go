package notestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	FileName  = "db.sqlite"
	ModelNote = "note"

	// Fixed width UTC so lexical order matches time order.
	timeFormat = "2006-01-02T15:04:05.000000000Z"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	Model     string    `json:"model"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Content   string    `json:"content"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open note database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to note database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewNoteID returns a fresh id of the form note_<10 chars>.
func NewNoteID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ModelNote + "_" + raw[:10]
}

// List returns every note, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, created_at, updated_at, content
		FROM notes
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, created_at, updated_at, content
		FROM notes
		WHERE id = ?
	`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, err
}

// Upsert inserts note, or updates content and bumps updatedAt when the id
// exists. Empty ids and zero timestamps are filled in.
func (s *Store) Upsert(ctx context.Context, note Note) (Note, error) {
	now := s.now().UTC()
	if note.ID == "" {
		note.ID = NewNoteID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, model, created_at, updated_at, content)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			updated_at = ?
	`,
		note.ID,
		ModelNote,
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
		note.Content,
		formatTime(now),
	)
	if err != nil {
		return Note{}, fmt.Errorf("failed to upsert note %s: %w", note.ID, err)
	}
	return s.Get(ctx, note.ID)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (Note, error) {
	var (
		n                Note
		created, updated string
	)
	if err := row.Scan(&n.ID, &n.Model, &created, &updated, &n.Content); err != nil {
		return Note{}, err
	}

	var err error
	if n.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
		return Note{}, fmt.Errorf("note %s created_at: %w", n.ID, err)
	}
	if n.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
		return Note{}, fmt.Errorf("note %s updated_at: %w", n.ID, err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
