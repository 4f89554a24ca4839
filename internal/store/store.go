package store

import (
	"context"

	"github.com/claralima1/Planner/internal/model"
)

// Store exposes persistence operations for study records.
// Implementations live under internal/store/<driver>/ (memory, jsonfile, sqlite, postgres).
//
// Drivers own the collection and the next-id counter. Ids are assigned on
// Create, grow monotonically and are never reused, even after Delete.
type Store interface {
	// List returns every study in insertion order.
	List(ctx context.Context) ([]*model.Study, error)
	// Create assigns the next id and appends the study.
	Create(ctx context.Context, in model.StudyInput) (*model.Study, error)
	// Update shallow-merges p over the stored study. Returns model.ErrNotFound
	// when p.ID is unknown; the collection is left unchanged in that case.
	Update(ctx context.Context, p model.StudyPatch) (*model.Study, error)
	// Delete removes the study with the given id. Deleting an unknown id is
	// a successful no-op.
	Delete(ctx context.Context, id int64) error
	// Reset empties the collection and sets the counter back to 1.
	Reset(ctx context.Context) error
}
