package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/claralima1/Planner/client"
)

// StudyHandler exposes the study CRUD operations as MCP tools.
type StudyHandler struct {
	client *client.Client
}

func NewStudyHandler(c *client.Client) *StudyHandler { return &StudyHandler{client: c} }

func (sh *StudyHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_studies",
		mcp.WithDescription("List every planned study session in creation order"),
	)
	get := mcp.NewTool("get_study",
		mcp.WithDescription("Fetch one study by id"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Study id")),
	)
	create := mcp.NewTool("create_study",
		mcp.WithDescription("Create a study session; returns the stored study with its id"),
		mcp.WithString("titulo", mcp.Required(), mcp.Description("Title, at least 3 characters")),
		mcp.WithNumber("duracao", mcp.Required(), mcp.Description("Duration in hours, greater than 0 and at most 24")),
		mcp.WithBoolean("concluido", mcp.Description("Whether the study is already completed")),
		mcp.WithString("descricao", mcp.Description("Optional description, up to 500 characters")),
		mcp.WithString("categoria", mcp.Description("Optional category, e.g. Frontend, Backend, DevOps")),
		mcp.WithString("prioridade", mcp.Description("Optional priority"), mcp.Enum("baixa", "media", "alta")),
	)
	update := mcp.NewTool("update_study",
		mcp.WithDescription("Change the supplied fields of a study; omitted fields keep their value"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Study id")),
		mcp.WithString("titulo", mcp.Description("New title")),
		mcp.WithNumber("duracao", mcp.Description("New duration in hours")),
		mcp.WithBoolean("concluido", mcp.Description("Completion flag")),
		mcp.WithString("descricao", mcp.Description("New description")),
		mcp.WithString("categoria", mcp.Description("New category")),
		mcp.WithString("prioridade", mcp.Description("New priority"), mcp.Enum("baixa", "media", "alta")),
	)
	del := mcp.NewTool("delete_study",
		mcp.WithDescription("Delete a study by id; unknown ids succeed"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Study id")),
	)

	s.AddTool(list, sh.handleListStudies)
	s.AddTool(get, sh.handleGetStudy)
	s.AddTool(create, sh.handleCreateStudy)
	s.AddTool(update, sh.handleUpdateStudy)
	s.AddTool(del, sh.handleDeleteStudy)
	return nil
}

func (sh *StudyHandler) handleListStudies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Debug().Msg("list_studies invoked")

	start := time.Now()
	lst, err := sh.client.ListStudies(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_studies failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list studies: %v", err)), nil
	}
	return jsonResult(lst)
}

func (sh *StudyHandler) handleGetStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Int64("id", id).Msg("get_study invoked")

	s, err := sh.client.GetStudy(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get study: %v", err)), nil
	}
	return jsonResult(s)
}

func (sh *StudyHandler) handleCreateStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("titulo")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	duration, err := req.RequireFloat("duracao")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := req.GetArguments()
	in := client.StudyInput{Title: title, Duration: duration}
	if v, ok := args["concluido"].(bool); ok {
		in.Completed = v
	}
	in.Description = optString(args, "descricao")
	in.Category = optString(args, "categoria")
	in.Priority = optPriority(args)

	if err := client.ValidateInput(in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("titulo", title).Float64("duracao", duration).Msg("create_study invoked")

	start := time.Now()
	s, err := sh.client.CreateStudy(ctx, in)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("create_study failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to create study: %v", err)), nil
	}
	return jsonResult(s)
}

func (sh *StudyHandler) handleUpdateStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := req.GetArguments()
	p := client.StudyPatch{ID: id}
	p.Title = optString(args, "titulo")
	if v, ok := args["duracao"].(float64); ok {
		p.Duration = &v
	}
	if v, ok := args["concluido"].(bool); ok {
		p.Completed = &v
	}
	p.Description = optString(args, "descricao")
	p.Category = optString(args, "categoria")
	p.Priority = optPriority(args)

	if err := client.ValidatePatch(p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Int64("id", id).Msg("update_study invoked")

	s, err := sh.client.UpdateStudy(ctx, p)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("update_study failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to update study: %v", err)), nil
	}
	return jsonResult(s)
}

func (sh *StudyHandler) handleDeleteStudy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Int64("id", id).Msg("delete_study invoked")

	res, err := sh.client.DeleteStudy(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("delete_study failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete study: %v", err)), nil
	}
	return jsonResult(res)
}

// requireID reads the numeric "id" argument; JSON numbers arrive as float64.
func requireID(req mcp.CallToolRequest) (int64, error) {
	f, err := req.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	if f <= 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("id must be a positive integer, got %v", f)
	}
	return int64(f), nil
}

func optString(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optPriority(args map[string]any) *client.Priority {
	if v, ok := args["prioridade"].(string); ok {
		p := client.Priority(v)
		return &p
	}
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
