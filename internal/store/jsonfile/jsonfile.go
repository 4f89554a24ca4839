// Package jsonfile keeps the whole collection in one JSON document on disk.
//
// Every operation reads the full document, mutates it and rewrites it in
// full. There is no locking and no atomic rename: two writers racing on the
// same file can lose each other's updates. That is acceptable for a
// single-user local tool and must not be relied upon for anything else.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store"
)

// document is the on-disk layout: {"nextId": n, "estudos": [...]}.
type document struct {
	NextID  int64         `json:"nextId"`
	Studies []model.Study `json:"estudos"`
}

func emptyDocument() document { return document{NextID: 1, Studies: []model.Study{}} }

// Option configures a file store.
type Option func(*fileStore)

// WithClock overrides the clock used to stamp dataCriacao.
func WithClock(now func() time.Time) Option {
	return func(s *fileStore) { s.now = now }
}

type fileStore struct {
	path string
	now  func() time.Time
}

// New returns a store backed by the JSON document at path. The file and its
// parent directories are created lazily on first use.
func New(path string, opts ...Option) store.Store {
	s := &fileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *fileStore) Path() string { return s.path }

func (s *fileStore) List(ctx context.Context) ([]*model.Study, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Study, 0, len(doc.Studies))
	for i := range doc.Studies {
		out = append(out, &doc.Studies[i])
	}
	return out, nil
}

func (s *fileStore) Create(ctx context.Context, in model.StudyInput) (*model.Study, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	st := model.NewStudy(doc.NextID, in)
	doc.NextID++
	created := strfmt.DateTime(s.now().UTC())
	st.CreatedAt = &created
	doc.Studies = append(doc.Studies, *st)
	if err := s.write(doc); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *fileStore) Update(ctx context.Context, p model.StudyPatch) (*model.Study, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range doc.Studies {
		if doc.Studies[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("study %d: %w", p.ID, model.ErrNotFound)
	}
	doc.Studies[idx] = p.Apply(doc.Studies[idx])
	if err := s.write(doc); err != nil {
		return nil, err
	}
	out := doc.Studies[idx]
	return &out, nil
}

func (s *fileStore) Delete(ctx context.Context, id int64) error {
	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.Study, 0, len(doc.Studies))
	for _, st := range doc.Studies {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	doc.Studies = kept
	return s.write(doc)
}

func (s *fileStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return s.write(emptyDocument())
}

func (s *fileStore) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// ensureFile creates the parent directory and an empty document when absent.
func (s *fileStore) ensureFile() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s.write(emptyDocument())
}

func (s *fileStore) read(ctx context.Context) (document, error) {
	if err := ctx.Err(); err != nil {
		return document{}, err
	}
	if err := s.ensureFile(); err != nil {
		return document{}, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return document{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Studies == nil {
		doc.Studies = []model.Study{}
	}
	return doc, nil
}

func (s *fileStore) write(doc document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
