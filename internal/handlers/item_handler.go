package handlers

import (
	"encoding/json"
	"net/http"

	"Repokit/internal/models"
	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service services.ItemService
}

func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

type itemRequest struct {
	BoxID      int64                  `json:"box_id"`
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Size       int64                  `json:"size"`
	SHA256     string                 `json:"sha256"`
	Properties map[string]interface{} `json:"properties"`
}

func (r itemRequest) toModel() (*models.Item, error) {
	properties, err := json.Marshal(r.Properties)
	if err != nil {
		return nil, err
	}
	return &models.Item{
		BoxID:      r.BoxID,
		Name:       r.Name,
		Type:       r.Type,
		Size:       r.Size,
		SHA256:     r.SHA256,
		Properties: properties,
	}, nil
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	if req.Name == "" || req.BoxID == 0 {
		return badRequest(c, "name and box_id are required")
	}
	item, err := req.toModel()
	if err != nil {
		return badRequest(c, "invalid properties")
	}
	return writeResult(c, h.service.CreateItem(item, actor), http.StatusCreated)
}

// CreateItems imports a batch of items; either all of them are stored or none.
func (h *ItemHandler) CreateItems(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	var req []itemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	items := make([]*models.Item, 0, len(req))
	for _, r := range req {
		if r.Name == "" || r.BoxID == 0 {
			return badRequest(c, "name and box_id are required")
		}
		item, err := r.toModel()
		if err != nil {
			return badRequest(c, "invalid properties")
		}
		items = append(items, item)
	}
	return writeResult(c, h.service.ImportItems(items, actor), http.StatusCreated)
}

func (h *ItemHandler) GetItemByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid item ID")
	}
	return writeResult(c, h.service.GetItemByID(id, c.QueryBool("deleted", false)), http.StatusOK)
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid item ID")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	found := h.service.GetItemByID(id, false)
	if found.HasErrors() {
		return writeResult(c, found, http.StatusOK)
	}
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	item := found.ResultObject
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Type != "" {
		item.Type = req.Type
	}
	if req.SHA256 != "" {
		item.SHA256 = req.SHA256
	}
	if req.Size != 0 {
		item.Size = req.Size
	}
	if req.Properties != nil {
		properties, err := json.Marshal(req.Properties)
		if err != nil {
			return badRequest(c, "invalid properties")
		}
		item.Properties = properties
	}
	updated := h.service.UpdateItem(item, actor)
	if updated.HasErrors() {
		return writeResult(c, updated, http.StatusOK)
	}
	return writeResult(c, found, http.StatusOK)
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid item ID")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid user ID")
	}
	return writeResult(c, h.service.DeleteItem(id, actor, c.QueryBool("hard", false)), http.StatusNoContent)
}

func (h *ItemHandler) RestoreItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid item ID")
	}
	return writeResult(c, h.service.RestoreItem(id), http.StatusOK)
}

func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return writeResult(c, h.service.ListItems(q), http.StatusOK)
}

func (h *ItemHandler) ListBoxItems(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid box ID")
	}
	return writeResult(c, h.service.GetItemsByBox(id, c.QueryBool("deleted", false)), http.StatusOK)
}
