package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/claralima1/Planner/internal/api/respond"
	"github.com/claralima1/Planner/internal/model"
	"github.com/claralima1/Planner/internal/services"
)

const (
	msgInvalidJSON = "JSON inválido"
	msgNotFound    = "Estudo não encontrado"
	msgRemoved     = "Estudo removido"
)

// StudyHandler is a thin HTTP transport over StudyService.
// It performs no schema validation beyond JSON decoding.
type StudyHandler struct {
	svc *services.StudyService
}

func NewStudyHandler(svc *services.StudyService) *StudyHandler { return &StudyHandler{svc: svc} }

// CreateStudy POST /api/estudos
func (h *StudyHandler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	var in model.StudyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, msgInvalidJSON, err.Error())
		return
	}
	out, err := h.svc.CreateStudy(r.Context(), in)
	if err != nil {
		internalError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ListStudies GET /api/estudos
func (h *StudyHandler) ListStudies(w http.ResponseWriter, r *http.Request) {
	lst, err := h.svc.ListStudies(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if lst == nil {
		lst = []*model.Study{}
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

// UpdateStudy PUT /api/estudos
func (h *StudyHandler) UpdateStudy(w http.ResponseWriter, r *http.Request) {
	var p model.StudyPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteBadRequest(w, msgInvalidJSON, err.Error())
		return
	}
	out, err := h.svc.UpdateStudy(r.Context(), p)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, msgNotFound)
			return
		}
		internalError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteStudy DELETE /api/estudos
func (h *StudyHandler) DeleteStudy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, msgInvalidJSON, err.Error())
		return
	}
	if err := h.svc.DeleteStudy(r.Context(), req.ID); err != nil {
		internalError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": msgRemoved})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Stack().Err(err).Str("method", r.Method).Msg("store operation failed")
	respond.WriteInternalError(w, err.Error())
}
