// Package invariants checks the study API contract as a black box, through
// HTTP only. It is shared by in-process tests and runs against live services.
package invariants

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resource = "/api/estudos"

// Checker exercises a running study service at baseURL.
type Checker struct {
	baseURL string
	client  *http.Client
}

func NewChecker(baseURL string) *Checker {
	return &Checker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type study struct {
	ID        int64   `json:"id"`
	Title     string  `json:"titulo"`
	Duration  float64 `json:"duracao"`
	Completed bool    `json:"concluido"`
}

// RunAll executes every invariant as a subtest.
func (c *Checker) RunAll(t *testing.T) {
	t.Run("IDsNeverReused", c.TestIDsNeverReused)
	t.Run("UpdateMergesAndKeepsID", c.TestUpdateMergesAndKeepsID)
	t.Run("UpdateUnknownIs404", c.TestUpdateUnknownIs404)
	t.Run("DeleteIsIdempotent", c.TestDeleteIsIdempotent)
	t.Run("ListPreservesInsertionOrder", c.TestListPreservesInsertionOrder)
}

// TestIDsNeverReused: a new id is greater than every id handed out before,
// including deleted ones.
func (c *Checker) TestIDsNeverReused(t *testing.T) {
	a := c.create(t, "Invariante A", 1)
	b := c.create(t, "Invariante B", 1)
	c.remove(t, b.ID)

	n := c.create(t, "Invariante C", 1)
	assert.Greater(t, n.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func (c *Checker) TestUpdateMergesAndKeepsID(t *testing.T) {
	s := c.create(t, "Merge", 2)

	status, body := c.do(t, http.MethodPut, map[string]any{"id": s.ID, "concluido": true, "idIgnorado": 1})
	require.Equal(t, http.StatusOK, status, string(body))

	var got study
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "Merge", got.Title)
	assert.Equal(t, 2.0, got.Duration)
	assert.True(t, got.Completed)
}

func (c *Checker) TestUpdateUnknownIs404(t *testing.T) {
	status, body := c.do(t, http.MethodPut, map[string]any{"id": int64(1) << 40, "titulo": "x"})
	require.Equal(t, http.StatusNotFound, status)

	var e map[string]any
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "Estudo não encontrado", e["error"])
}

func (c *Checker) TestDeleteIsIdempotent(t *testing.T) {
	s := c.create(t, "Remover", 1)
	c.remove(t, s.ID)
	c.remove(t, s.ID)
	for _, item := range c.list(t) {
		assert.NotEqual(t, s.ID, item.ID)
	}
}

func (c *Checker) TestListPreservesInsertionOrder(t *testing.T) {
	first := c.create(t, "Ordem 1", 1)
	second := c.create(t, "Ordem 2", 1)

	pos := map[int64]int{}
	for i, item := range c.list(t) {
		pos[item.ID] = i
	}
	require.Contains(t, pos, first.ID)
	require.Contains(t, pos, second.ID)
	assert.Less(t, pos[first.ID], pos[second.ID])
}

func (c *Checker) create(t *testing.T, title string, duration float64) study {
	t.Helper()
	status, body := c.do(t, http.MethodPost, map[string]any{"titulo": title, "duracao": duration, "concluido": false})
	require.Equal(t, http.StatusOK, status, string(body))
	var s study
	require.NoError(t, json.Unmarshal(body, &s))
	require.Positive(t, s.ID)
	return s
}

func (c *Checker) remove(t *testing.T, id int64) {
	t.Helper()
	status, body := c.do(t, http.MethodDelete, map[string]any{"id": id})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"message":"Estudo removido"}`, string(body))
}

func (c *Checker) list(t *testing.T) []study {
	t.Helper()
	status, body := c.do(t, http.MethodGet, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var out []study
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotNil(t, out, "list must be a JSON array")
	return out
}

func (c *Checker) do(t *testing.T, method string, payload any) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+resource, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}
