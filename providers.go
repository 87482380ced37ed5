package main

import (
	"os"

	"Repokit/internal/config"
	"Repokit/internal/localization"
	"Repokit/internal/repository"
	"Repokit/internal/services"
)

const defaultConfigurationPath = "repokit.yaml"

func Provider() (*config.Configuration, error) {
	path := os.Getenv("REPOKIT_CONFIG")
	if path == "" {
		path = defaultConfigurationPath
	}
	return config.LoadConfiguration(path)
}

func RepositoryOptionsProvider(cfg *config.Configuration, logService services.LogService) (repository.Options, error) {
	localizer, err := localization.NewLocalizer(cfg.Localization.Language, cfg.Localization.Path)
	if err != nil {
		return repository.Options{}, err
	}
	return repository.NewOptions(cfg, localizer, logService.Component("repository")), nil
}
