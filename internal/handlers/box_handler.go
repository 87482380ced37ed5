package handlers

import (
	"encoding/json"
	"net/http"

	"Repokit/internal/models"
	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
)

type BoxHandler struct {
	service services.BoxService
}

func NewBoxHandler(service services.BoxService) *BoxHandler {
	return &BoxHandler{service: service}
}

type boxRequest struct {
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties"`
}

func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req boxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	if req.Properties == nil {
		req.Properties = make(map[string]interface{})
	}
	return writeResult(c, h.service.CreateBox(req.Name, req.Properties, actor), http.StatusCreated)
}

// CreateBoxes inserts a batch of boxes atomically. Repeated names keep their first occurrence.
func (h *BoxHandler) CreateBoxes(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req []boxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	boxes := make([]*models.Box, 0, len(req))
	for _, r := range req {
		if r.Name == "" {
			return badRequest(c, "name is required")
		}
		properties, err := json.Marshal(r.Properties)
		if err != nil {
			return badRequest(c, "invalid properties")
		}
		boxes = append(boxes, &models.Box{Name: r.Name, Properties: properties})
	}
	return writeResult(c, h.service.CreateBoxes(boxes, actor), http.StatusCreated)
}

func (h *BoxHandler) GetBoxByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid box ID")
	}
	return writeResult(c, h.service.GetBoxByID(id, c.QueryBool("deleted", false)), http.StatusOK)
}

func (h *BoxHandler) UpdateBox(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid box ID")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req boxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	return writeResult(c, h.service.UpdateBox(id, req.Name, req.Properties, actor), http.StatusOK)
}

// DeleteBox soft deletes by default; ?hard=true removes the rows.
func (h *BoxHandler) DeleteBox(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid box ID")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	return writeResult(c, h.service.DeleteBox(id, actor, c.QueryBool("hard", false)), http.StatusNoContent)
}

func (h *BoxHandler) RestoreBox(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid box ID")
	}
	return writeResult(c, h.service.RestoreBox(id), http.StatusOK)
}

func (h *BoxHandler) ListBoxes(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return writeResult(c, h.service.ListBoxes(q), http.StatusOK)
}
