package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/store"
	"github.com/claralima1/Planner/internal/store/storetest"
)

func openTemp(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTemp(t, filepath.Join(t.TempDir(), "estudos.db"))
	})
}

func TestSqliteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "estudos.db")

	first, err := Open(path)
	require.NoError(t, err)
	a, err := first.Create(ctx, model.StudyInput{Title: "persisted", Duration: 3})
	require.NoError(t, err)
	b, err := first.Create(ctx, model.StudyInput{Title: "gone", Duration: 1})
	require.NoError(t, err)
	require.NoError(t, first.Delete(ctx, b.ID))
	require.NoError(t, first.Close())

	second := openTemp(t, path)
	lst, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, a.ID, lst[0].ID)
	require.NotNil(t, lst[0].CreatedAt)

	c, err := second.Create(ctx, model.StudyInput{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, b.ID+1, c.ID, "AUTOINCREMENT must not reuse deleted ids")
}

func TestSqliteStore_HealthPing(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "estudos.db"))
	assert.NoError(t, s.HealthPing(context.Background()))
}
