package handlers

import (
	"fmt"
	"strconv"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/analytics/forecast"
	"github.com/eskmag/greenpulse/internal/models"
	"github.com/eskmag/greenpulse/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ListDatasets handles listing configured datasets
// GET /v1/datasets
func (h *Handler) ListDatasets(c *fiber.Ctx) error {
	names := h.analysisService.Datasets()
	return c.JSON(models.DatasetListResponse{
		Datasets: names,
		Count:    len(names),
	})
}

// GetAnalysis handles full analysis requests
// GET /v1/datasets/:dataset/analysis?years_ahead=N
func (h *Handler) GetAnalysis(c *fiber.Ctx) error {
	result, err := h.executeAnalysis(c)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}

// GetForecast handles forecast requests, optionally filtered by point type
// GET /v1/datasets/:dataset/forecast?years_ahead=N&type=historical|forecast
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	pointType := c.Query("type")
	if pointType != "" {
		if _, err := forecast.ParsePointType(pointType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    services.CodeInvalidType,
					Message: err.Error(),
					Path:    c.Path(),
				},
			})
		}
	}

	result, err := h.executeAnalysis(c)
	if err != nil {
		return h.respondError(c, err)
	}

	points := result.Forecast
	if pointType != "" {
		points = points.Filter(forecast.PointType(pointType))
	}

	return c.JSON(models.ForecastResponse{
		Dataset:    result.Dataset,
		YearsAhead: result.YearsAhead,
		Type:       pointType,
		Points:     points,
		Count:      len(points),
		Model:      result.ForecastModel,
	})
}

// GetSummary handles text report requests
// GET /v1/datasets/:dataset/summary?years_ahead=N
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	result, err := h.executeAnalysis(c)
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(result.SummaryReport)
}

// PostAnalysis handles analysis of an inline series
// POST /v1/analysis
func (h *Handler) PostAnalysis(c *fiber.Ctx) error {
	var body models.AnalysisRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    services.CodeInvalidJSON,
				Message: "Failed to parse JSON body",
				Path:    c.Path(),
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	yearsAhead := 0
	if body.YearsAhead != nil {
		if err := checkExplicitHorizon(*body.YearsAhead); err != nil {
			return h.respondError(c, err)
		}
		yearsAhead = *body.YearsAhead
	}

	result, err := h.analysisService.AnalyzeSeries(c.UserContext(), body.Name, body.Series(), yearsAhead)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}

// executeAnalysis runs the analysis named by the :dataset param
func (h *Handler) executeAnalysis(c *fiber.Ctx) (*services.AnalysisResponse, error) {
	yearsAhead := 0
	if raw := c.Query("years_ahead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, services.NewServiceErrorWithDetails(services.CodeInvalidParameter,
				"years_ahead must be an integer",
				map[string]interface{}{"years_ahead": raw})
		}
		if err := checkExplicitHorizon(n); err != nil {
			return nil, err
		}
		yearsAhead = n
	}

	// Params alias the request buffer; the name outlives the request in
	// metric labels and cached reports.
	return h.analysisService.Execute(c.UserContext(), services.AnalysisRequest{
		Dataset:    utils.CopyString(c.Params("dataset")),
		YearsAhead: yearsAhead,
	})
}

// checkExplicitHorizon rejects a years_ahead the client supplied that is not
// positive. The service treats zero as "use the default", which only applies
// when the parameter is absent.
func checkExplicitHorizon(n int) error {
	if n > 0 {
		return nil
	}
	return services.FromAnalysisError(analytics.NewError("forecast", analytics.ErrInvalidForecastHorizon,
		fmt.Sprintf("years_ahead must be positive, got %d", n)))
}

// respondError writes err as an ErrorResponse with the status its code maps to
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := statusForCode(svcErr.Code)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error("Analysis request failed",
				"path", c.Path(),
				"code", svcErr.Code,
				"error", svcErr.Message)
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Path:    c.Path(),
				Details: svcErr.Details,
			},
		})
	}

	h.logger.Error("Analysis request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    services.CodeAnalysisFailed,
			Message: err.Error(),
			Path:    c.Path(),
		},
	})
}

func statusForCode(code string) int {
	switch code {
	case services.CodeDatasetNotFound:
		return fiber.StatusNotFound
	case services.CodeInvalidForecastHorizon, services.CodeMalformedInput,
		services.CodeInvalidParameter, services.CodeInvalidJSON, services.CodeInvalidType:
		return fiber.StatusBadRequest
	case services.CodeEmptySeries, services.CodeInsufficientHistory, services.CodeDivisionByZero:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
