package client

import "github.com/claralima1/Planner/internal/model"

// Public type aliases so SDK consumers can import only the client package.
type (
	Study      = model.Study
	StudyInput = model.StudyInput
	StudyPatch = model.StudyPatch
	Priority   = model.Priority
)

const (
	PriorityLow    = model.PriorityLow
	PriorityMedium = model.PriorityMedium
	PriorityHigh   = model.PriorityHigh
)

// DeleteResponse is the body returned by a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}
