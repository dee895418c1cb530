package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyword-engine-go/internal/service"
	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/serp"
)

// Controller exposes the analysis engine over HTTP
type Controller struct {
	analysis service.AnalysisService
	log      *logger.Logger
}

// AnalyzeRequest is the POST /api/v1/analyze request body
type AnalyzeRequest struct {
	Keywords []string                      `json:"keywords"`
	Signals  map[string]*serp.SignalBundle `json:"signals,omitempty"`
}

// NewController creates a controller over the analysis service
func NewController(analysis service.AnalysisService) *Controller {
	return &Controller{
		analysis: analysis,
		log:      logger.GetLogger().WithField("component", "http_controller"),
	}
}

// Register mounts all routes on the fiber app
func (c *Controller) Register(app *fiber.App) {
	app.Post("/api/v1/analyze", c.handleAnalyze)
	app.Get("/health", c.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Controller) handleAnalyze(ctx *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if len(req.Keywords) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "keywords cannot be empty",
		})
	}

	start := time.Now()
	result, err := c.analysis.Analyze(ctx.Context(), req.Keywords, req.Signals)
	if err != nil {
		c.log.WithError(err).Error("Analysis request failed")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "analysis failed",
		})
	}

	c.log.WithFields(map[string]interface{}{
		"keywords":    len(req.Keywords),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Analysis request served")
	return ctx.JSON(result)
}

func (c *Controller) handleHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
