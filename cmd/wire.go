package cmd

import (
	"Repokit/internal/config"
	"Repokit/internal/handlers"
	"Repokit/internal/services"

	"gorm.io/gorm"
)

// Server holds every wired component of the running service.
type Server struct {
	Configuration  *config.Configuration
	DB             *gorm.DB
	BoxService     services.BoxService
	BoxHandler     *handlers.BoxHandler
	ItemService    services.ItemService
	ItemHandler    *handlers.ItemHandler
	LabelService   services.LabelService
	LabelHandler   *handlers.LabelHandler
	LogService     services.LogService
	JanitorService *services.Janitor
	JanitorHandler *handlers.JanitorHandler
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	boxService services.BoxService,
	boxHandler *handlers.BoxHandler,
	itemService services.ItemService,
	itemHandler *handlers.ItemHandler,
	labelService services.LabelService,
	labelHandler *handlers.LabelHandler,
	logService services.LogService,
	janitorService *services.Janitor,
	janitorHandler *handlers.JanitorHandler,
) *Server {
	return &Server{
		Configuration:  configuration,
		DB:             db,
		BoxService:     boxService,
		BoxHandler:     boxHandler,
		ItemService:    itemService,
		ItemHandler:    itemHandler,
		LabelService:   labelService,
		LabelHandler:   labelHandler,
		LogService:     logService,
		JanitorService: janitorService,
		JanitorHandler: janitorHandler,
	}
}
