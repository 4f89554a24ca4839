// Package memory is the process-local store driver. State is lost when the
// process exits and no creation time is recorded.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store"
)

type memStore struct {
	mu      sync.Mutex
	studies []model.Study
	nextID  int64
}

// New returns an empty in-memory store whose first id is 1.
func New() store.Store {
	return &memStore{studies: []model.Study{}, nextID: 1}
}

func (s *memStore) List(ctx context.Context) ([]*model.Study, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Study, 0, len(s.studies))
	for _, st := range s.studies {
		c := st.Clone()
		out = append(out, &c)
	}
	return out, nil
}

func (s *memStore) Create(ctx context.Context, in model.StudyInput) (*model.Study, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := model.NewStudy(s.nextID, in)
	s.nextID++
	s.studies = append(s.studies, *st)
	out := st.Clone()
	return &out, nil
}

func (s *memStore) Update(ctx context.Context, p model.StudyPatch) (*model.Study, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.studies {
		if s.studies[i].ID == p.ID {
			s.studies[i] = p.Apply(s.studies[i])
			out := s.studies[i].Clone()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("study %d: %w", p.ID, model.ErrNotFound)
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.studies[:0]
	for _, st := range s.studies {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	s.studies = kept
	return nil
}

func (s *memStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies = []model.Study{}
	s.nextID = 1
	return nil
}
