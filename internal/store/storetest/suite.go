package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store; the suite still calls Reset
// before each case so drivers sharing a database can be reused.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"RoundTrip", testRoundTrip},
		{"IDsStrictlyIncreasingAcrossDeletes", testIDsMonotonic},
		{"UpdateUnknownIDIsNotFound", testUpdateNotFound},
		{"DeleteUnknownIDIsNoop", testDeleteUnknown},
		{"PartialUpdateMerges", testPartialUpdate},
		{"OptionalFieldsSurvive", testOptionalFields},
		{"InsertionOrderPreserved", testInsertionOrder},
		{"ResetRestartsCounter", testReset},
		{"EmptyListIsNotNil", testEmptyList},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := makeStore(t)
			require.NoError(t, s.Reset(context.Background()))
			tc.fn(t, s)
		})
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func mustCreate(t *testing.T, s store.Store, title string) *model.Study {
	t.Helper()
	out, err := s.Create(context.Background(), model.StudyInput{Title: title, Duration: 1})
	require.NoError(t, err)
	return out
}

func testRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	created, err := s.Create(ctx, model.StudyInput{Title: "X", Duration: 2, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, "X", all[0].Title)
	assert.Equal(t, 2.0, all[0].Duration)
	assert.False(t, all[0].Completed)
}

func testIDsMonotonic(t *testing.T, s store.Store) {
	ctx := context.Background()
	var last int64
	seen := map[int64]bool{}
	for i := 0; i < 6; i++ {
		st := mustCreate(t, s, "s")
		assert.Greater(t, st.ID, last)
		assert.False(t, seen[st.ID], "id %d reused", st.ID)
		seen[st.ID] = true
		last = st.ID
		if i%2 == 1 {
			// delete the newest record; the next id must still grow
			require.NoError(t, s.Delete(ctx, st.ID))
		}
	}
}

func testUpdateNotFound(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustCreate(t, s, "keep")

	before, err := s.List(ctx)
	require.NoError(t, err)

	out, err := s.Update(ctx, model.StudyPatch{ID: 42, Title: strPtr("nope")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)
	assert.Nil(t, out)

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testDeleteUnknown(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustCreate(t, s, "keep")

	before, err := s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, 999))
	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testPartialUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	created := mustCreate(t, s, "Go concurrency")

	updated, err := s.Update(ctx, model.StudyPatch{ID: created.ID, Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Go concurrency", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.Duration, updated.Duration)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Go concurrency", all[0].Title)
	assert.True(t, all[0].Completed)
}

func testOptionalFields(t *testing.T, s store.Store) {
	ctx := context.Background()
	high := model.PriorityHigh
	created, err := s.Create(ctx, model.StudyInput{
		Title:       "Indexes",
		Duration:    1.5,
		Completed:   true,
		Description: strPtr("b-trees"),
		Category:    strPtr("Banco de Dados"),
		Priority:    &high,
	})
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	got := all[0]
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Description)
	assert.Equal(t, "b-trees", *got.Description)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Banco de Dados", *got.Category)
	require.NotNil(t, got.Priority)
	assert.Equal(t, model.PriorityHigh, *got.Priority)

	// omitting description on update does not clear it
	medium := model.PriorityMedium
	updated, err := s.Update(ctx, model.StudyPatch{ID: got.ID, Priority: &medium})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "b-trees", *updated.Description)
	require.NotNil(t, updated.Priority)
	assert.Equal(t, model.PriorityMedium, *updated.Priority)
}

func testInsertionOrder(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, title := range []string{"c", "a", "b"} {
		mustCreate(t, s, title)
	}
	// update the first one; order must not change
	all, err := s.List(ctx)
	require.NoError(t, err)
	_, err = s.Update(ctx, model.StudyPatch{ID: all[0].ID, Title: strPtr("z")})
	require.NoError(t, err)

	all, err = s.List(ctx)
	require.NoError(t, err)
	var titles []string
	for _, st := range all {
		titles = append(titles, st.Title)
	}
	assert.Equal(t, []string{"z", "a", "b"}, titles)
}

func testReset(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustCreate(t, s, "a")
	mustCreate(t, s, "b")

	require.NoError(t, s.Reset(ctx))
	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	again := mustCreate(t, s, "c")
	assert.Equal(t, int64(1), again.ID)
}

func testEmptyList(t *testing.T, s store.Store) {
	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Len(t, all, 0)
}
