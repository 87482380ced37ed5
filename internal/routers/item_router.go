package routers

import (
	"Repokit/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRouter(app *fiber.App, server *cmd.Server) {
	itemHandler := server.ItemHandler
	app.Get("/items", itemHandler.ListItems)
	app.Post("/items", itemHandler.CreateItem)
	app.Post("/items/bulk", itemHandler.CreateItems)
	app.Get("/items/:id", itemHandler.GetItemByID)
	app.Put("/items/:id", itemHandler.UpdateItem)
	app.Delete("/items/:id", itemHandler.DeleteItem)
	app.Post("/items/:id/restore", itemHandler.RestoreItem)
}
