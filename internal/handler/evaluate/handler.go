// Package evaluate exposes the evaluation pipeline over HTTP. It is a thin
// adapter: input presence validation and serialization happen here, all
// decision logic stays in the evaluator service.
package evaluate

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/passguard/passguard/internal/handler"
	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/service/evaluator"
	apperrors "github.com/passguard/passguard/pkg/errors"
	"github.com/passguard/passguard/pkg/metrics"
)

type Handler struct {
	service *evaluator.Service
	metrics *metrics.Metrics
}

func NewHandler(service *evaluator.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/evaluate", h.Evaluate)
}

func (h *Handler) Evaluate(c *gin.Context) {
	var req model.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Routed through the error middleware so it is logged with the
		// request context and mapped by AppError.StatusCode.
		_ = c.Error(apperrors.BadRequest(bindErrorMessage(err), err))
		c.Abort()
		return
	}

	start := time.Now()
	result := h.service.Evaluate(c.Request.Context(), req.Password, req.Username, req.Email)

	if h.metrics != nil {
		h.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
		h.metrics.EvaluationsTotal.WithLabelValues(result.Strength.String()).Inc()
		h.metrics.BreachChecksTotal.WithLabelValues(
			metrics.BreachOutcome(result.IsBreached, result.BreachReason),
		).Inc()
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

// bindErrorMessage turns binding failures into field-level messages instead
// of leaking validator internals.
func bindErrorMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			switch e.Tag() {
			case "required":
				parts = append(parts, strings.ToLower(e.Field())+" is required")
			default:
				parts = append(parts, strings.ToLower(e.Field())+" is invalid")
			}
		}
		return strings.Join(parts, "; ")
	}
	return "invalid request body"
}
