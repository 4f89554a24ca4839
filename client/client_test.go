package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService mimics the /api/estudos contract and counts GETs.
type fakeService struct {
	mu     sync.Mutex
	nextID int64
	items  []Study
	gets   atomic.Int32
	fail   bool
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	f := &fakeService{nextID: 1}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != studiesPath {
		http.NotFound(w, r)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"disk on fire","code":500}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		f.gets.Add(1)
		_ = json.NewEncoder(w).Encode(f.items)
	case http.MethodPost:
		var in StudyInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		s := Study{ID: f.nextID, Title: in.Title, Duration: in.Duration, Completed: in.Completed, Category: in.Category}
		f.nextID++
		f.items = append(f.items, s)
		_ = json.NewEncoder(w).Encode(s)
	case http.MethodPut:
		var p StudyPatch
		_ = json.NewDecoder(r.Body).Decode(&p)
		for i := range f.items {
			if f.items[i].ID == p.ID {
				f.items[i] = p.Apply(f.items[i])
				_ = json.NewEncoder(w).Encode(f.items[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Estudo não encontrado","code":404}`))
	case http.MethodDelete:
		var body struct {
			ID int64 `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		kept := f.items[:0]
		for _, s := range f.items {
			if s.ID != body.ID {
				kept = append(kept, s)
			}
		}
		f.items = kept
		_, _ = w.Write([]byte(`{"message":"Estudo removido"}`))
	}
}

func TestClient_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	f, srv := newFakeService(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	lst, err := c.ListStudies(ctx)
	require.NoError(t, err)
	assert.NotNil(t, lst)
	assert.Empty(t, lst)

	_, err = c.ListStudies(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.gets.Load(), "second list should be served from cache")

	created, err := c.CreateStudy(ctx, StudyInput{Title: "Go", Duration: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)

	lst, err = c.ListStudies(ctx)
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.EqualValues(t, 2, f.gets.Load(), "write must invalidate the cache")
}

func TestClient_FailedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	f, srv := newFakeService(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListStudies(ctx)
	require.NoError(t, err)

	title := "never"
	_, err = c.UpdateStudy(ctx, StudyPatch{ID: 99, Title: &title})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Estudo não encontrado", err.Error())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)

	_, err = c.ListStudies(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.gets.Load(), "failed write must not invalidate")
}

func TestClient_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	_, srv := newFakeService(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	s, err := c.CreateStudy(ctx, StudyInput{Title: "SQL", Duration: 1})
	require.NoError(t, err)

	done := true
	up, err := c.UpdateStudy(ctx, StudyPatch{ID: s.ID, Completed: &done})
	require.NoError(t, err)
	assert.True(t, up.Completed)
	assert.Equal(t, "SQL", up.Title)

	got, err := c.GetStudy(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	res, err := c.DeleteStudy(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Estudo removido", res.Message)

	_, err = c.GetStudy(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// unknown ids still succeed
	res, err = c.DeleteStudy(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, "Estudo removido", res.Message)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	f, srv := newFakeService(t)
	f.fail = true
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListStudies(context.Background())
	require.Error(t, err)
	assert.Equal(t, "disk on fire", err.Error())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.ListStudies(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list studies network error")
}

func TestClient_MirrorServesSecondProcess(t *testing.T) {
	ctx := context.Background()
	f, srv := newFakeService(t)
	path := filepath.Join(t.TempDir(), "mirror.json")

	first, err := New(srv.URL, WithMirror(NewFileMirrorAt(path)))
	require.NoError(t, err)
	_, err = first.CreateStudy(ctx, StudyInput{Title: "Docker", Duration: 1})
	require.NoError(t, err)
	_, err = first.ListStudies(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, f.gets.Load())

	// a fresh client with the same mirror does not hit the service
	second, err := New(srv.URL, WithMirror(NewFileMirrorAt(path)))
	require.NoError(t, err)
	lst, err := second.ListStudies(ctx)
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, "Docker", lst[0].Title)
	assert.EqualValues(t, 1, f.gets.Load())

	// a write through the second client clears the shared mirror
	_, err = second.DeleteStudy(ctx, lst[0].ID)
	require.NoError(t, err)
	_, loaded := NewFileMirrorAt(path).Load()
	assert.False(t, loaded)
}

func TestClient_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	_, srv := newFakeService(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.CreateStudy(ctx, StudyInput{Title: "Rust", Duration: 1})
	require.NoError(t, err)

	lst, err := c.ListStudies(ctx)
	require.NoError(t, err)
	lst[0].Title = "mutated"

	again, err := c.ListStudies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rust", again[0].Title)
}
