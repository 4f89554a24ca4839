package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store"
)

// StudyService is a thin layer over the store. It performs no validation:
// the API accepts whatever the client sends.
type StudyService struct {
	store store.Store
	log   zerolog.Logger
}

func NewStudyService(s store.Store, log zerolog.Logger) *StudyService {
	return &StudyService{store: s, log: log}
}

func (s *StudyService) ListStudies(ctx context.Context) ([]*model.Study, error) {
	return s.store.List(ctx)
}

func (s *StudyService) CreateStudy(ctx context.Context, in model.StudyInput) (*model.Study, error) {
	st, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("study_id", st.ID).Str("title", st.Title).Msg("study created")
	return st, nil
}

func (s *StudyService) UpdateStudy(ctx context.Context, p model.StudyPatch) (*model.Study, error) {
	st, err := s.store.Update(ctx, p)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.log.Debug().Int64("study_id", p.ID).Msg("update of unknown study")
		}
		return nil, err
	}
	s.log.Info().Int64("study_id", st.ID).Msg("study updated")
	return st, nil
}

// DeleteStudy succeeds whether or not the id exists.
func (s *StudyService) DeleteStudy(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("study_id", id).Msg("study deleted")
	return nil
}
