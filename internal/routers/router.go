package routers

import (
	"Repokit/cmd"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupBoxRouter(app, server)
	SetupItemRouter(app, server)
	SetupLabelRouter(app, server)
	SetupJanitorRouter(app, server)
}
