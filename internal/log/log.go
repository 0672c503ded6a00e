package log

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process logger (JSON, ISO8601 "ts") and installs it as the zap global.
// A non-empty file is appended to alongside stdout.
func Init(level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	if level == "" {
		level = "info"
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func L() *zap.Logger { return zap.L() }

func requestFields(c *fiber.Ctx, action string, fields map[string]any) []zap.Field {
	out := []zap.Field{zap.String("action", action)}
	if c != nil {
		out = append(out,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			out = append(out, zap.String("req_id", rid))
		}
	}
	if len(fields) > 0 {
		out = append(out, zap.Any("fields", fields))
	}
	return out
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	zap.L().Info(action, requestFields(c, action, fields)...)
}

// Audit records a successful mutation.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	zap.L().Info(action, append(requestFields(c, action, fields), zap.Bool("audit", true))...)
}

// Security records rejected input.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	zap.L().Warn(action, requestFields(c, action, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	zap.L().Error(action, append(requestFields(c, action, fields), zap.Error(err))...)
}
