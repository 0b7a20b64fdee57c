package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-roles/internal/validators"
	"github.com/MKhiriev/go-user-roles/models"
)

// DirectoryServiceWrapper defines middleware composition for DirectoryService.
// Implementations wrap an existing DirectoryService to add behavior such as
// logging or validating.
type DirectoryServiceWrapper interface {
	Wrap(DirectoryService) DirectoryService // returns a decorated DirectoryService applying additional behavior
}

// DirectoryValidationService rejects malformed users and roles before they
// reach the wrapped DirectoryService. Reads and deletes pass straight through.
type DirectoryValidationService struct {
	inner     DirectoryService
	validator validators.Validator
}

func NewDirectoryValidationService() DirectoryServiceWrapper {
	return &DirectoryValidationService{
		validator: validators.NewDirectoryValidator(),
	}
}

func (v *DirectoryValidationService) Wrap(wrapped DirectoryService) DirectoryService {
	v.inner = wrapped
	return v
}

func (v *DirectoryValidationService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateUser(ctx, user)
}

func (v *DirectoryValidationService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateUser(ctx, user)
}

func (v *DirectoryValidationService) CreateRole(ctx context.Context, role models.Role) (models.Role, error) {
	if err := v.validator.Validate(ctx, role, validators.FieldRoleName); err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateRole(ctx, role)
}

func (v *DirectoryValidationService) UpdateRole(ctx context.Context, role models.Role) (models.Role, error) {
	if err := v.validator.Validate(ctx, role); err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateRole(ctx, role)
}

func (v *DirectoryValidationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return v.inner.ListUsers(ctx)
}

func (v *DirectoryValidationService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.GetUser(ctx, userID)
}

func (v *DirectoryValidationService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return v.inner.GetUserByUsername(ctx, username)
}

func (v *DirectoryValidationService) DeleteUser(ctx context.Context, userID int64) error {
	return v.inner.DeleteUser(ctx, userID)
}

func (v *DirectoryValidationService) AssignRoleToUser(ctx context.Context, userID, roleID int64) error {
	return v.inner.AssignRoleToUser(ctx, userID, roleID)
}

func (v *DirectoryValidationService) UnassignRoleFromUser(ctx context.Context, userID, roleID int64) error {
	return v.inner.UnassignRoleFromUser(ctx, userID, roleID)
}

func (v *DirectoryValidationService) ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	return v.inner.ListUserAssignments(ctx, userID)
}

func (v *DirectoryValidationService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return v.inner.ListRoles(ctx)
}

func (v *DirectoryValidationService) GetRole(ctx context.Context, roleID int64) (models.Role, error) {
	return v.inner.GetRole(ctx, roleID)
}

func (v *DirectoryValidationService) GetRoleByName(ctx context.Context, name string) (models.Role, error) {
	return v.inner.GetRoleByName(ctx, name)
}

func (v *DirectoryValidationService) DeleteRole(ctx context.Context, roleID int64) error {
	return v.inner.DeleteRole(ctx, roleID)
}

func (v *DirectoryValidationService) ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error) {
	return v.inner.ListRoleUsers(ctx, roleID)
}
