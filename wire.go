//go:build wireinject
// +build wireinject

package main

import (
	"Repokit/cmd"
	"Repokit/database"
	"Repokit/internal/handlers"
	"Repokit/internal/repository"
	"Repokit/internal/services"

	"github.com/google/wire"
)

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		services.NewBoxService,
		handlers.NewBoxHandler,
		repository.NewBoxRepository,
		services.NewItemService,
		handlers.NewItemHandler,
		repository.NewItemRepository,
		services.NewLabelService,
		handlers.NewLabelHandler,
		repository.NewLabelRepository,
		database.SetupDatabase,
		services.NewLogService,
		services.NewJanitorService,
		handlers.NewJanitorHandler,
		RepositoryOptionsProvider,
		Provider,
	)
	return nil, nil
}
