package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fangji/internal/log"
	"fangji/internal/services"
)

const (
	msgNotFound    = "药方不存在"
	msgBadBody     = "请求体必须是JSON对象"
	msgCreated     = "药方创建成功"
	msgUpdated     = "药方更新成功"
	msgDeleted     = "药方删除成功"
	msgSearchFail  = "搜索失败: "
	msgEmptyQuery  = "搜索关键词不能为空"
	msgInternal    = "internal server error"
	msgPageNotInt  = "page 参数必须是整数"
	msgLimitNotInt = "limit 参数必须是整数"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// apiError maps service errors onto the JSON error surface. Anything unexpected
// is handed to the app ErrorHandler.
func apiError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Security(c, "validation.fail", map[string]any{"field": verr.Field})
		return jsonError(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, msgNotFound)
	default:
		return err
	}
}

// ErrorHandler is the fiber last-resort handler: JSON for the API, the
// notfound page for everything else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Error(c, "server.error", err, nil)
	}

	msg := msgInternal
	if code < fiber.StatusInternalServerError && fe != nil {
		msg = fe.Message
	}
	if strings.HasPrefix(c.Path(), "/api/") {
		return jsonError(c, code, msg)
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": "出错了，请稍后重试"}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
