package service

import (
	"context"

	"github.com/MKhiriev/go-user-roles/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DirectoryService is the façade over the user and role repositories. It is
// the only component that composes several repository calls for one request.
type DirectoryService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	AssignRoleToUser(ctx context.Context, userID, roleID int64) error
	UnassignRoleFromUser(ctx context.Context, userID, roleID int64) error
	ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error)

	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRole(ctx context.Context, roleID int64) (models.Role, error)
	GetRoleByName(ctx context.Context, name string) (models.Role, error)
	CreateRole(ctx context.Context, role models.Role) (models.Role, error)
	UpdateRole(ctx context.Context, role models.Role) (models.Role, error)
	DeleteRole(ctx context.Context, roleID int64) error
	ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
