package handlers

import (
	"net/http"
	"strconv"

	"Repokit/internal/result"
	"Repokit/internal/services"

	"github.com/gofiber/fiber/v2"
)

const actorHeader = "X-User-ID"

var statusByKey = map[string]int{
	result.EntityNotFound:             http.StatusNotFound,
	result.MissingEntity:              http.StatusBadRequest,
	result.SoftDeletionNotIDeleteable: http.StatusBadRequest,
	services.InvalidQuery:             http.StatusBadRequest,
}

// writeResult renders res with status on success, or its errors with the status of the first one.
func writeResult[T any](c *fiber.Ctx, res *result.Result[T], status int) error {
	if !res.HasErrors() {
		if status == http.StatusNoContent {
			return c.SendStatus(status)
		}
		return c.Status(status).JSON(res)
	}
	errorStatus, ok := statusByKey[res.Errors[0].Key]
	if !ok {
		errorStatus = http.StatusInternalServerError
	}
	return c.Status(errorStatus).JSON(fiber.Map{"errors": res.Errors})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"errors": []result.Error{{Key: "InvalidInput", Message: message}},
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// actorID reads the acting user from the X-User-ID header; anonymous requests carry none.
func actorID(c *fiber.Ctx) (*int64, error) {
	raw := c.Get(actorHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseListQuery(c *fiber.Ctx) (services.ListQuery, error) {
	q := services.ListQuery{
		Filter:         c.Query("filter"),
		OrderBy:        c.Query("orderby"),
		Include:        c.Query("include"),
		IncludeDeleted: c.QueryBool("deleted", false),
	}
	for name, target := range map[string]**int{"skip": &q.Skip, "take": &q.Take} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return q, fiber.NewError(http.StatusBadRequest, "invalid "+name)
		}
		*target = &value
	}
	return q, nil
}
