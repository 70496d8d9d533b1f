package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// HealthHandler responde /health verificando la conexión a la BD.
type HealthHandler struct {
	service string
	driver  string
	ping    func(ctx context.Context) error
}

// NewHealthHandler construye el handler. ping puede ser nil (no se verifica la BD).
func NewHealthHandler(service, driver string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{service: service, driver: driver, ping: ping}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if h.ping != nil {
		if err := h.ping(c.Context()); err != nil {
			log.Error().Err(err).Msg("health: BD no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable", "service": h.service, "driver": h.driver,
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service, "driver": h.driver})
}
