package api

import (
	"net/http"

	"SectorPulse/internal/domain/models"
	domrepo "SectorPulse/internal/domain/repository"
	"SectorPulse/internal/usecase"
	xhttp "SectorPulse/pkg/http"
	xlogger "SectorPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// AnalysisEchoHandler exposes the analysis pipeline over HTTP.
type AnalysisEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.SectorAnalyzer
	store    domrepo.AnalysisStore
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, analyzer *usecase.SectorAnalyzer, store domrepo.AnalysisStore) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{logger: logger, analyzer: analyzer, store: store}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/analyze", h.Analyze)
	e.GET("/analyses", h.List)
	e.GET("/health", h.Health)
}

// AnalyzeRequest is the optional trigger body.
type AnalyzeRequest struct {
	TradeDate string `json:"trade_date" validate:"omitempty,len=8,numeric"`
}

// analysisListResponse is the wire envelope shared by trigger and retrieval.
type analysisListResponse struct {
	Count   int                     `json:"count"`
	Results []models.AnalysisRecord `json:"results"`
}

// Analyze triggers one synchronous orchestrator run.
func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	req := &AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results, err := h.analyzer.Run(c.Request().Context(), req.TradeDate)
	if err != nil {
		h.logger.Error("analysis run failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return c.JSON(http.StatusOK, analysisListResponse{Count: len(results), Results: results})
}

// List returns stored records, most recent first.
func (h *AnalysisEchoHandler) List(c echo.Context) error {
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), defaultListLimit)
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	results, err := h.store.Latest(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("latest analyses failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return c.JSON(http.StatusOK, analysisListResponse{Count: len(results), Results: results})
}

// Health reports liveness.
func (h *AnalysisEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
