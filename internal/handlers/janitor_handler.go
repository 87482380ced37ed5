package handlers

import (
	"errors"
	"net/http"

	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
)

type JanitorHandler struct {
	janitor *services.Janitor
}

func NewJanitorHandler(janitor *services.Janitor) *JanitorHandler {
	return &JanitorHandler{janitor: janitor}
}

// Clean runs a purge cycle. With ?wait=true the cycle report is returned once it finishes,
// otherwise the cycle runs in the background.
func (h *JanitorHandler) Clean(c *fiber.Ctx) error {
	if !c.QueryBool("wait", false) {
		if err := h.janitor.ForceStartCleanCycle(); err != nil {
			return c.Status(cleanStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusAccepted).JSON(fiber.Map{})
	}
	report, err := h.janitor.RunCleanCycle()
	if err != nil {
		return c.Status(cleanStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func cleanStatus(err error) int {
	if errors.Is(err, services.ErrJanitorStopped) {
		return http.StatusServiceUnavailable
	}
	return http.StatusConflict
}

func (h *JanitorHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"cleaning": h.janitor.IsCleaning()})
}
