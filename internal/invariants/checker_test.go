package invariants

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/api"
	"github.com/claralima1/Planner/internal/services"
	"github.com/claralima1/Planner/internal/store"
	"github.com/claralima1/Planner/internal/store/jsonfile"
	"github.com/claralima1/Planner/internal/store/memory"
)

func serve(t *testing.T, st store.Store) string {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(services.NewStudyService(st, zerolog.Nop()), nil, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestInvariants_MemoryStore(t *testing.T) {
	NewChecker(serve(t, memory.New())).RunAll(t)
}

func TestInvariants_JSONFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "estudos.json")
	NewChecker(serve(t, jsonfile.New(path))).RunAll(t)
}

// Set STUDY_SERVICE_INVARIANTS_URL to check a running deployment.
func TestInvariants_LiveService(t *testing.T) {
	url := os.Getenv("STUDY_SERVICE_INVARIANTS_URL")
	if url == "" {
		t.Skip("STUDY_SERVICE_INVARIANTS_URL not set")
	}
	NewChecker(url).RunAll(t)
}
