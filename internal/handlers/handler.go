package handlers

import (
	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	analysisService *services.AnalysisService
}

// New creates a new handler instance
func New(logger *logging.Logger, analysisService *services.AnalysisService) *Handler {
	return &Handler{
		logger:          logger,
		analysisService: analysisService,
	}
}
