package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidRoleID     = errors.New("invalid role ID")
	ErrEmptyUsername     = errors.New("username is required")
	ErrEmptyEmail        = errors.New("email is required")
	ErrEmptyPasswordHash = errors.New("passwordHash is required")
	ErrEmptyRoleName     = errors.New("roleName is required")
	ErrInvalidRoleInSet  = errors.New("role set contains an invalid role ID")
)
