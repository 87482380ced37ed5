package handlers

import (
	"net/http"

	"Repokit/internal/models"
	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
)

type LabelHandler struct {
	service services.LabelService
}

func NewLabelHandler(service services.LabelService) *LabelHandler {
	return &LabelHandler{service: service}
}

// CreateLabels accepts a list of labels and stores one per distinct name.
func (h *LabelHandler) CreateLabels(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	labels := make([]*models.Label, 0, len(req))
	for _, r := range req {
		if r.Name == "" {
			return badRequest(c, "name is required")
		}
		labels = append(labels, &models.Label{Name: r.Name, Color: r.Color})
	}
	return writeResult(c, h.service.CreateLabels(labels, actor), http.StatusCreated)
}

func (h *LabelHandler) DeleteLabel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid label ID")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	return writeResult(c, h.service.DeleteLabel(id, actor, c.QueryBool("hard", false)), http.StatusNoContent)
}

func (h *LabelHandler) ListLabels(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return writeResult(c, h.service.ListLabels(q), http.StatusOK)
}
