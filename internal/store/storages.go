package store

import "github.com/MKhiriev/go-user-roles/internal/logger"

// Storages bundles the repositories that share one [Gateway].
type Storages struct {
	UserRepository UserRepository
	RoleRepository RoleRepository
}

func NewStorages(gateway *Gateway, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(gateway, log),
		RoleRepository: NewRoleRepository(gateway, log),
	}
}
