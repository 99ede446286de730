package dto

import (
	"github.com/mlreyes/panelhub/internal/app/engine"
	"github.com/mlreyes/panelhub/internal/app/models"
)

// EvaluationResponse pairs a request with its engine evaluation. The
// evaluation is derived data: recomputed on every read, never stored.
type EvaluationResponse struct {
	Request    *models.DefenseRequest `json:"request"`
	Evaluation *engine.Evaluation     `json:"evaluation"`
}
