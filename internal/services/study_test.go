package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store/memory"
)

func TestStudyService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewStudyService(memory.New(), zerolog.Nop())

	created, err := svc.CreateStudy(ctx, model.StudyInput{Title: "Go", Duration: 1})
	if err != nil {
		t.Fatalf("CreateStudy: %v", err)
	}

	done := true
	updated, err := svc.UpdateStudy(ctx, model.StudyPatch{ID: created.ID, Completed: &done})
	if err != nil || !updated.Completed || updated.Title != "Go" {
		t.Fatalf("UpdateStudy: got=%+v err=%v", updated, err)
	}

	if _, err := svc.UpdateStudy(ctx, model.StudyPatch{ID: 404}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteStudy(ctx, created.ID); err != nil {
		t.Fatalf("DeleteStudy: %v", err)
	}
	if err := svc.DeleteStudy(ctx, created.ID); err != nil {
		t.Fatalf("second DeleteStudy must be a no-op: %v", err)
	}

	lst, err := svc.ListStudies(ctx)
	if err != nil || len(lst) != 0 {
		t.Fatalf("ListStudies: n=%d err=%v", len(lst), err)
	}
}
