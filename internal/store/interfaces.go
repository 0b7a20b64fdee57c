package store

import (
	"context"

	"github.com/MKhiriev/go-user-roles/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository manages users and their role assignments.
//
// Reads that match nothing return [ErrUserNotFound]. Every other failure is
// a wrapped storage error.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, user models.User) (bool, error)
	Delete(ctx context.Context, userID int64) (bool, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) (bool, error)
	GetAssignments(ctx context.Context, userID int64) ([]models.Assignment, error)
}

// RoleRepository manages roles. Reads that match nothing return
// [ErrRoleNotFound].
type RoleRepository interface {
	GetAll(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, roleID int64) (models.Role, error)
	GetByName(ctx context.Context, name string) (models.Role, error)
	Create(ctx context.Context, role models.Role) (models.Role, error)
	Update(ctx context.Context, role models.Role) (bool, error)
	Delete(ctx context.Context, roleID int64) (bool, error)
	GetUsersByRoleID(ctx context.Context, roleID int64) ([]models.User, error)
}
