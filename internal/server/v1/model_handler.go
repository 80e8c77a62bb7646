package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/pkg/api"
)

type ModelHandler struct {
	catalog ports.ModelCatalog
}

func NewModelHandler(catalog ports.ModelCatalog) *ModelHandler {
	return &ModelHandler{catalog: catalog}
}

// ListModels returns the sorted catalog.
// GET /v1/models?flagship=true&provider=openai
func (h *ModelHandler) ListModels(c *gin.Context) {
	filter := ports.ModelFilter{Provider: c.Query("provider")}
	if raw := c.Query("flagship"); raw != "" {
		flagship, err := strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(domain.InvalidInputError("Invalid 'flagship' parameter"))
			return
		}
		filter.FlagshipOnly = flagship
	}

	records, err := h.catalog.Models(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := make([]api.Model, 0, len(records))
	for _, r := range records {
		data = append(data, toAPIModel(r))
	}

	c.JSON(http.StatusOK, api.ModelList{Object: "list", Data: data})
}

// RefreshModels drops the cached catalog and returns the refetched one.
// POST /v1/models/refresh
func (h *ModelHandler) RefreshModels(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	h.ListModels(c)
}

func toAPIModel(r domain.ModelRecord) api.Model {
	return api.Model{
		ID:            r.ID,
		Name:          r.Name,
		Provider:      r.Provider,
		Description:   r.Description,
		ContextLength: r.ContextLength,
		Pricing: api.ModelPricing{
			Prompt:     r.Pricing.Prompt,
			Completion: r.Pricing.Completion,
		},
		Flagship:          r.Flagship,
		Fast:              r.Fast,
		Rank:              r.Rank,
		IntelligenceIndex: r.IntelligenceIndex,
		CodingIndex:       r.CodingIndex,
		MathIndex:         r.MathIndex,
	}
}
