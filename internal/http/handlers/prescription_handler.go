package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fangji/internal/log"
	"fangji/internal/metrics"
	"fangji/internal/services"
	"fangji/internal/validate"
)

type PrescriptionHandler struct {
	Rx      *services.PrescriptionService
	Metrics *metrics.Metrics
}

// pageParams reads page and limit; a non-numeric value has already been answered with 400.
func pageParams(c *fiber.Ctx) (page, limit int, ok bool, err error) {
	page, ok = validate.Int(c.Query("page"), 1)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "page"})
		return 0, 0, false, jsonError(c, fiber.StatusBadRequest, msgPageNotInt)
	}
	limit, ok = validate.Int(c.Query("limit"), services.DefaultLimit)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "limit"})
		return 0, 0, false, jsonError(c, fiber.StatusBadRequest, msgLimitNotInt)
	}
	return page, limit, true, nil
}

// GET /api/prescriptions
func (h *PrescriptionHandler) List(c *fiber.Ctx) error {
	page, limit, ok, err := pageParams(c)
	if !ok {
		return err
	}
	res, err := h.Rx.List(c.UserContext(), page, limit, validate.Category(c.Query("category")))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(res)
}

// GET /api/prescriptions/:id
func (h *PrescriptionHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, msgNotFound)
	}
	p, err := h.Rx.Get(c.UserContext(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(p)
}

// POST /api/prescriptions
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var in services.CreateInput
	if err := c.BodyParser(&in); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}
	id, err := h.Rx.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, err)
	}
	h.Metrics.Mutation("create")
	log.Audit(c, "prescription.create", map[string]any{"id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": msgCreated})
}

// PUT /api/prescriptions/:id
func (h *PrescriptionHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, msgNotFound)
	}
	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "body"})
		return jsonError(c, fiber.StatusBadRequest, msgBadBody)
	}
	if err := h.Rx.Update(c.UserContext(), id, body); err != nil {
		return apiError(c, err)
	}
	h.Metrics.Mutation("update")
	log.Audit(c, "prescription.update", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": msgUpdated})
}

// DELETE /api/prescriptions/:id
func (h *PrescriptionHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, msgNotFound)
	}
	if err := h.Rx.Delete(c.UserContext(), id); err != nil {
		return apiError(c, err)
	}
	h.Metrics.Mutation("delete")
	log.Audit(c, "prescription.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": msgDeleted})
}
