package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fangji/internal/validate"
)

// PageHandler serves the two HTML shells; the data is fetched client-side from the API.
type PageHandler struct{}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return render(c, "index", fiber.Map{"Title": "中药方剂库"})
}

// GET /detail/:id
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msgNotFound})
	}
	return render(c, "detail", fiber.Map{"Title": "方剂详情", "PrescriptionID": id})
}
