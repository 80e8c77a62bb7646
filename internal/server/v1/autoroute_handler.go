package v1

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nulzo/autorouter/internal/analytics"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/internal/server/middleware"
	"github.com/nulzo/autorouter/internal/server/validator"
	"github.com/nulzo/autorouter/internal/store/model"
	"github.com/nulzo/autorouter/pkg/api"
)

type AutorouteHandler struct {
	router    ports.Autorouter
	ingestor  analytics.Ingestor
	validator *validator.Validator
}

// NewAutorouteHandler wires the routing endpoint. ingestor may be nil.
func NewAutorouteHandler(router ports.Autorouter, ingestor analytics.Ingestor, v *validator.Validator) *AutorouteHandler {
	return &AutorouteHandler{
		router:    router,
		ingestor:  ingestor,
		validator: v,
	}
}

// Autoroute selects a model for the prompt in the request body.
// POST /v1/autoroute
func (h *AutorouteHandler) Autoroute(c *gin.Context) {
	var req api.AutorouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(domain.ValidationError(h.validator.ParseError(err)))
		return
	}

	start := time.Now()
	result, err := h.router.SelectOptimalModel(c.Request.Context(), req.Prompt)
	h.record(c, req.Prompt, result, err, time.Since(start))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, api.AutorouteResponse{
		SelectedModelID: result.SelectedModelID,
		Category:        string(result.Category),
		Confidence:      result.Confidence,
		Reasoning:       result.Reasoning,
	})
}

func (h *AutorouteHandler) record(c *gin.Context, prompt string, result *domain.AutorouteResult, err error, took time.Duration) {
	if h.ingestor == nil {
		return
	}

	log := &model.RoutingLog{
		ID:          uuid.NewString(),
		AppName:     middleware.AppNameFrom(c.Request.Context()),
		PromptChars: utf8.RuneCountInString(prompt),
		LatencyMS:   took.Milliseconds(),
		StatusCode:  http.StatusOK,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		CreatedAt:   time.Now().UTC(),
	}
	if key, ok := middleware.APIKeyFrom(c.Request.Context()); ok {
		log.APIKeyID = key.ID
	}

	if err != nil {
		log.StatusCode, _ = middleware.ErrorStatus(err)
		if e, ok := domain.AsError(err); ok {
			log.ErrorKind = string(e.Kind)
		}
	} else {
		log.Category = string(result.Category)
		log.SelectedModelID = result.SelectedModelID
		log.Confidence = result.Confidence
		log.ClassifierModel = result.ClassifierModel
		log.PromptTokens = result.Usage.PromptTokens
		log.CompletionTokens = result.Usage.CompletionTokens
	}

	h.ingestor.Log(log)
}
