package service

import (
	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/store"
)

type Services struct {
	DirectoryService DirectoryService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	directoryService := NewDirectoryValidationService().
		Wrap(NewDirectoryService(storages.UserRepository, storages.RoleRepository, logger))

	return &Services{
		DirectoryService: directoryService,
		AppInfoService:   appInfoService,
	}, nil
}
