package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-roles/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUserID targets the user identity; it must be non-negative.
	FieldUserID = "user_id"

	// FieldUsername targets the non-blank login name.
	FieldUsername = "username"

	// FieldEmail targets the non-blank contact address.
	FieldEmail = "email"

	// FieldPasswordHash targets the non-blank stored password hash.
	FieldPasswordHash = "password_hash"

	// FieldRoles targets the role set carried by a user; every role ID in it
	// must be non-negative.
	FieldRoles = "roles"

	// FieldRoleID targets the role identity; it must be non-negative.
	FieldRoleID = "role_id"

	// FieldRoleName targets the non-blank role name.
	FieldRoleName = "role_name"
)

// DirectoryValidator checks users and roles before they reach storage.
type DirectoryValidator struct{}

func NewDirectoryValidator() Validator {
	return &DirectoryValidator{}
}

// Validate accepts models.User and models.Role (or pointers to them). With no
// fields given every rule for the type is applied.
func (v *DirectoryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.Role:
		return v.validateRole(ctx, value, fields...)
	case *models.Role:
		return v.validateRole(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DirectoryValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldUsername, FieldEmail, FieldPasswordHash, FieldRoles}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if user.UserID < 0 {
				return ErrInvalidUserID
			}
		case FieldUsername:
			if strings.TrimSpace(user.Username) == "" {
				return ErrEmptyUsername
			}
		case FieldEmail:
			if strings.TrimSpace(user.Email) == "" {
				return ErrEmptyEmail
			}
		case FieldPasswordHash:
			if strings.TrimSpace(user.PasswordHash) == "" {
				return ErrEmptyPasswordHash
			}
		case FieldRoles:
			for _, role := range user.Roles {
				if role.RoleID < 0 {
					return fmt.Errorf("%w: %d", ErrInvalidRoleInSet, role.RoleID)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *DirectoryValidator) validateRole(_ context.Context, role models.Role, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRoleID, FieldRoleName}
	}

	for _, f := range fields {
		switch f {
		case FieldRoleID:
			if role.RoleID < 0 {
				return ErrInvalidRoleID
			}
		case FieldRoleName:
			if strings.TrimSpace(role.RoleName) == "" {
				return ErrEmptyRoleName
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}
