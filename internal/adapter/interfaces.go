// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the user directory HTTP API.
//
// The primary abstraction is [DirectoryAdapter]. The package ships a resty
// implementation ([NewHTTPDirectoryAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrBadRequest] for 400).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-roles/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/directory_adapter_mock.go -package=mock

// DirectoryAdapter mirrors the directory API one call per endpoint.
type DirectoryAdapter interface {
	// Version returns the server's application version string.
	Version(ctx context.Context) (string, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	// FindUsersByUsername returns at most one user; an unknown name yields an
	// empty slice.
	FindUsersByUsername(ctx context.Context, username string) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	AssignRole(ctx context.Context, userID, roleID int64) error
	UnassignRole(ctx context.Context, userID, roleID int64) error

	// ListUserAssignments returns the assignment rows of one user.
	ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error)

	ListRoles(ctx context.Context) ([]models.Role, error)
	FindRolesByName(ctx context.Context, name string) ([]models.Role, error)
	GetRole(ctx context.Context, roleID int64) (models.Role, error)
	CreateRole(ctx context.Context, role models.Role) (models.Role, error)
	UpdateRole(ctx context.Context, role models.Role) (models.Role, error)
	DeleteRole(ctx context.Context, roleID int64) error
	ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error)
}
