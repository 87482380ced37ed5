package routers

import (
	"Repokit/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupLabelRouter(app *fiber.App, server *cmd.Server) {
	labelHandler := server.LabelHandler
	app.Get("/labels", labelHandler.ListLabels)
	app.Post("/labels", labelHandler.CreateLabels)
	app.Delete("/labels/:id", labelHandler.DeleteLabel)
}
