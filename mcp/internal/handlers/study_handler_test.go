package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/client"
	"github.com/claralima1/Planner/internal/api"
	"github.com/claralima1/Planner/internal/services"
	"github.com/claralima1/Planner/internal/store/memory"
)

func newHandler(t *testing.T) *StudyHandler {
	t.Helper()
	svc := services.NewStudyService(memory.New(), zerolog.Nop())
	ts := httptest.NewServer(api.NewRouter(svc, nil, zerolog.Nop()))
	t.Cleanup(ts.Close)

	sdk, err := client.New(ts.URL)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return NewStudyHandler(sdk)
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	return res.Content[0].(mcp.TextContent).Text
}

func TestStudyHandler_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sh := newHandler(t)

	res, err := sh.handleCreateStudy(ctx, call(map[string]any{
		"titulo":     "Testes com Go",
		"duracao":    2.0,
		"categoria":  "Testes",
		"prioridade": "media",
	}))
	if err != nil || res.IsError {
		t.Fatalf("create_study failed: %v %s", err, text(t, res))
	}
	var created client.Study
	if err := json.Unmarshal([]byte(text(t, res)), &created); err != nil || created.ID != 1 {
		t.Fatalf("unexpected create result: %+v err=%v", created, err)
	}

	res, err = sh.handleUpdateStudy(ctx, call(map[string]any{"id": 1.0, "concluido": true}))
	if err != nil || res.IsError {
		t.Fatalf("update_study failed: %v %s", err, text(t, res))
	}

	res, err = sh.handleGetStudy(ctx, call(map[string]any{"id": 1.0}))
	if err != nil || res.IsError {
		t.Fatalf("get_study failed: %v", err)
	}
	var got client.Study
	_ = json.Unmarshal([]byte(text(t, res)), &got)
	if !got.Completed || got.Title != "Testes com Go" {
		t.Fatalf("unexpected study after update: %+v", got)
	}

	res, err = sh.handleDeleteStudy(ctx, call(map[string]any{"id": 1.0}))
	if err != nil || res.IsError {
		t.Fatalf("delete_study failed: %v", err)
	}
	if text(t, res) != `{"message":"Estudo removido"}` {
		t.Fatalf("unexpected delete result: %s", text(t, res))
	}

	res, err = sh.handleListStudies(ctx, call(nil))
	if err != nil || res.IsError {
		t.Fatalf("list_studies failed: %v", err)
	}
	if text(t, res) != `[]` {
		t.Fatalf("expected empty list, got %s", text(t, res))
	}
}

func TestStudyHandler_ValidationErrorsAreToolErrors(t *testing.T) {
	ctx := context.Background()
	sh := newHandler(t)

	res, err := sh.handleCreateStudy(ctx, call(map[string]any{"titulo": "Go", "duracao": 1.0}))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError || text(t, res) != "O título deve ter pelo menos 3 caracteres" {
		t.Fatalf("expected validation tool error, got %s", text(t, res))
	}

	res, _ = sh.handleGetStudy(ctx, call(map[string]any{"id": 1.5}))
	if !res.IsError {
		t.Fatalf("fractional id should be rejected")
	}

	res, _ = sh.handleUpdateStudy(ctx, call(map[string]any{"id": 9.0, "titulo": "Inexistente"}))
	if !res.IsError {
		t.Fatalf("update of unknown id should be a tool error")
	}
}
