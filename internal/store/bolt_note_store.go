package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"pinboard/internal/types"
)

var bucketNotes = []byte("notes")

type BoltNoteStore struct {
	db *bolt.DB
}

func NewBoltNoteStore(path string) (*BoltNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bolt db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltNoteStore{db: db}, nil
}

func (s *BoltNoteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	out := make([]*types.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var note types.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			out = append(out, &note)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortNotesByZ(out)
	return out, nil
}

func (s *BoltNoteStore) Get(ctx context.Context, id string) (*types.Note, bool, error) {
	var (
		out *types.Note
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		data := b.Get([]byte(id))
		if data == nil {
			return nil
		}
		var note types.Note
		if err := json.Unmarshal(data, &note); err != nil {
			return err
		}
		out = &note
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *BoltNoteStore) Upsert(ctx context.Context, note *types.Note) (*types.Note, error) {
	if note == nil {
		return nil, errors.New("note is required")
	}
	var stored *types.Note
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketNotes)
		if err != nil {
			return err
		}
		var existing *types.Note
		if id := strings.TrimSpace(note.ID); id != "" {
			if data := b.Get([]byte(id)); data != nil {
				var prev types.Note
				if err := json.Unmarshal(data, &prev); err != nil {
					return err
				}
				existing = &prev
			}
		}
		stored = normalizeNote(note, existing)
		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return b.Put([]byte(stored.ID), data)
	})
	if err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

func (s *BoltNoteStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil || b.Get([]byte(id)) == nil {
			return ErrNoteNotFound
		}
		return b.Delete([]byte(id))
	})
}
