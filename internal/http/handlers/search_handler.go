package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fangji/internal/log"
	"fangji/internal/metrics"
	"fangji/internal/services"
	"fangji/internal/validate"
)

type SearchHandler struct {
	Rx      *services.PrescriptionService
	Metrics *metrics.Metrics
}

// GET /api/prescriptions/search
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return jsonError(c, fiber.StatusBadRequest, msgEmptyQuery)
	}
	page, limit, ok, err := pageParams(c)
	if !ok {
		return err
	}
	matchType := c.Query("match_type", "fuzzy")

	res, err := h.Rx.Search(c.UserContext(), q, matchType, page, limit)
	if err != nil {
		if services.IsValidation(err) {
			return apiError(c, err)
		}
		log.Error(c, "search.error", err, map[string]any{"match_type": matchType})
		return jsonError(c, fiber.StatusInternalServerError, msgSearchFail+err.Error())
	}
	h.Metrics.Search(matchType)
	return c.JSON(res)
}
