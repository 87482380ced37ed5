package routers

import (
	"Repokit/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupBoxRouter(app *fiber.App, server *cmd.Server) {
	boxHandler := server.BoxHandler
	app.Get("/boxes", boxHandler.ListBoxes)
	app.Post("/boxes", boxHandler.CreateBox)
	app.Post("/boxes/bulk", boxHandler.CreateBoxes)
	app.Get("/boxes/:id", boxHandler.GetBoxByID)
	app.Get("/boxes/:id/items", server.ItemHandler.ListBoxItems)
	app.Put("/boxes/:id", boxHandler.UpdateBox)
	app.Delete("/boxes/:id", boxHandler.DeleteBox)
	app.Post("/boxes/:id/restore", boxHandler.RestoreBox)
}
