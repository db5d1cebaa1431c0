package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"pinboard/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	color      TEXT NOT NULL,
	position_x INTEGER NOT NULL,
	position_y INTEGER NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	z_index    INTEGER NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

type noteRow struct {
	ID        string    `db:"id"`
	Color     string    `db:"color"`
	PositionX int       `db:"position_x"`
	PositionY int       `db:"position_y"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	ZIndex    int       `db:"z_index"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r noteRow) toNote() *types.Note {
	return &types.Note{
		ID:        r.ID,
		Color:     types.Color(r.Color),
		Position:  types.Position{X: r.PositionX, Y: r.PositionY},
		Size:      types.Size{Width: r.Width, Height: r.Height},
		ZIndex:    r.ZIndex,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func rowFromNote(note *types.Note) noteRow {
	return noteRow{
		ID:        note.ID,
		Color:     string(note.Color),
		PositionX: note.Position.X,
		PositionY: note.Position.Y,
		Width:     note.Size.Width,
		Height:    note.Size.Height,
		ZIndex:    note.ZIndex,
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

type SQLiteNoteStore struct {
	db *sqlx.DB
}

func NewSQLiteNoteStore(path string) (*SQLiteNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteNoteStore{db: db}, nil
}

func (s *SQLiteNoteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	var rows []noteRow
	query := `SELECT id, color, position_x, position_y, width, height, z_index, text, created_at, updated_at
	          FROM notes ORDER BY z_index ASC, created_at ASC`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	out := make([]*types.Note, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toNote())
	}
	return out, nil
}

func (s *SQLiteNoteStore) Get(ctx context.Context, id string) (*types.Note, bool, error) {
	var row noteRow
	query := `SELECT id, color, position_x, position_y, width, height, z_index, text, created_at, updated_at
	          FROM notes WHERE id = ?`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.toNote(), true, nil
}

func (s *SQLiteNoteStore) Upsert(ctx context.Context, note *types.Note) (*types.Note, error) {
	if note == nil {
		return nil, errors.New("note is required")
	}
	existing, ok, err := s.Get(ctx, strings.TrimSpace(note.ID))
	if err != nil {
		return nil, err
	}
	if !ok {
		existing = nil
	}
	stored := normalizeNote(note, existing)
	query := `INSERT INTO notes (id, color, position_x, position_y, width, height, z_index, text, created_at, updated_at)
	          VALUES (:id, :color, :position_x, :position_y, :width, :height, :z_index, :text, :created_at, :updated_at)
	          ON CONFLICT(id) DO UPDATE SET
	            color = excluded.color, position_x = excluded.position_x, position_y = excluded.position_y,
	            width = excluded.width, height = excluded.height, z_index = excluded.z_index,
	            text = excluded.text, updated_at = excluded.updated_at`
	if _, err := s.db.NamedExecContext(ctx, query, rowFromNote(stored)); err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

func (s *SQLiteNoteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
