package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStudyPatch_ApplyKeepsUnsuppliedFields(t *testing.T) {
	high := PriorityHigh
	base := Study{ID: 1, Title: "Go", Duration: 2, Description: strPtr("channels"), Priority: &high}

	done := true
	got := StudyPatch{ID: 1, Completed: &done}.Apply(base)

	assert.Equal(t, "Go", got.Title)
	assert.Equal(t, 2.0, got.Duration)
	assert.True(t, got.Completed)
	require.NotNil(t, got.Description)
	assert.Equal(t, "channels", *got.Description)
	require.NotNil(t, got.Priority)
	assert.Equal(t, PriorityHigh, *got.Priority)

	// original untouched
	assert.False(t, base.Completed)
}

func TestStudyPatch_ApplyDoesNotAlias(t *testing.T) {
	base := Study{ID: 1, Title: "Go"}
	cat := "Backend"
	got := StudyPatch{ID: 1, Category: &cat}.Apply(base)
	cat = "Frontend"
	require.NotNil(t, got.Category)
	assert.Equal(t, "Backend", *got.Category)
}

func TestStudyPatch_ApplyNeverChangesID(t *testing.T) {
	got := StudyPatch{ID: 99, Title: strPtr("x")}.Apply(Study{ID: 3})
	assert.Equal(t, int64(3), got.ID)
}

func TestPatchDecode_AbsentFieldsStayNil(t *testing.T) {
	var p StudyPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"concluido":true}`), &p))
	assert.Equal(t, int64(1), p.ID)
	require.NotNil(t, p.Completed)
	assert.True(t, *p.Completed)
	assert.Nil(t, p.Title)
	assert.Nil(t, p.Duration)
}

func TestStudyJSON_WireNames(t *testing.T) {
	b, err := json.Marshal(Study{ID: 1, Title: "X", Duration: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"titulo":"X","duracao":2,"concluido":false}`, string(b))
}

func TestPatchFrom_RoundTrip(t *testing.T) {
	low := PriorityLow
	s := Study{ID: 4, Title: "SQL", Duration: 1.5, Completed: true, Priority: &low}
	assert.Equal(t, s, PatchFrom(s).Apply(Study{ID: 4}))
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("urgente").Valid())
}
