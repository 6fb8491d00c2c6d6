package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HTTPRecorder lo que necesita RequestObserver; lo implementa metrics.Recorder.
type HTTPRecorder interface {
	HTTPRequest(method, route string, status int, seconds float64)
}

// RequestObserver registra cada petición en el log y, si rec no es nil, en métricas.
// Resuelve el error del handler con el ErrorHandler de la app para conocer el status final.
func RequestObserver(log zerolog.Logger, rec HTTPRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("petición HTTP")

		if rec != nil {
			rec.HTTPRequest(c.Method(), c.Route().Path, status, elapsed.Seconds())
		}
		return nil
	}
}
