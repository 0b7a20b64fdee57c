// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/store"
	"github.com/MKhiriev/go-user-roles/models"
)

// directoryService sequences repository calls for the directory API. It keeps
// no state between calls.
type directoryService struct {
	userRepository store.UserRepository
	roleRepository store.RoleRepository

	logger *logger.Logger
}

func NewDirectoryService(userRepository store.UserRepository, roleRepository store.RoleRepository, logger *logger.Logger) DirectoryService {
	return &directoryService{
		userRepository: userRepository,
		roleRepository: roleRepository,
		logger:         logger,
	}
}

// ── users ─────────────────────────────────────────────────────────────────────

func (s *directoryService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepository.GetAll(ctx)
}

func (s *directoryService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.GetByID(ctx, userID)
}

func (s *directoryService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.userRepository.GetByUsername(ctx, username)
}

func (s *directoryService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := s.userRepository.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*directoryService.CreateUser").
		Int64("user_id", created.UserID).
		Int("roles", len(created.Roles)).
		Msg("user created")
	return created, nil
}

// UpdateUser checks the user exists, applies the update and returns the user
// as stored afterwards.
func (s *directoryService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if _, err := s.userRepository.GetByID(ctx, user.UserID); err != nil {
		return models.User{}, err
	}

	updated, err := s.userRepository.Update(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	if !updated {
		return models.User{}, fmt.Errorf("%w: user %d", ErrUpdateFailed, user.UserID)
	}

	return s.userRepository.GetByID(ctx, user.UserID)
}

// DeleteUser reports [store.ErrUserNotFound] for a missing user and
// [ErrDeleteFailed] when the row vanished between the check and the delete.
func (s *directoryService) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepository.GetByID(ctx, userID); err != nil {
		return err
	}

	removed, err := s.userRepository.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: user %d", ErrDeleteFailed, userID)
	}

	return nil
}

func (s *directoryService) AssignRoleToUser(ctx context.Context, userID, roleID int64) error {
	return s.userRepository.AssignRole(ctx, userID, roleID)
}

func (s *directoryService) UnassignRoleFromUser(ctx context.Context, userID, roleID int64) error {
	removed, err := s.userRepository.RemoveRole(ctx, userID, roleID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrAssignmentNotFound
	}

	return nil
}

// ListUserAssignments returns the raw assignment rows of an existing user.
func (s *directoryService) ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	if _, err := s.userRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.userRepository.GetAssignments(ctx, userID)
}

// ── roles ─────────────────────────────────────────────────────────────────────

func (s *directoryService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.roleRepository.GetAll(ctx)
}

func (s *directoryService) GetRole(ctx context.Context, roleID int64) (models.Role, error) {
	return s.roleRepository.GetByID(ctx, roleID)
}

func (s *directoryService) GetRoleByName(ctx context.Context, name string) (models.Role, error) {
	return s.roleRepository.GetByName(ctx, name)
}

func (s *directoryService) CreateRole(ctx context.Context, role models.Role) (models.Role, error) {
	created, err := s.roleRepository.Create(ctx, role)
	if err != nil {
		return models.Role{}, err
	}

	return created, nil
}

func (s *directoryService) UpdateRole(ctx context.Context, role models.Role) (models.Role, error) {
	if _, err := s.roleRepository.GetByID(ctx, role.RoleID); err != nil {
		return models.Role{}, err
	}

	updated, err := s.roleRepository.Update(ctx, role)
	if err != nil {
		return models.Role{}, err
	}
	if !updated {
		return models.Role{}, fmt.Errorf("%w: role %d", ErrUpdateFailed, role.RoleID)
	}

	return s.roleRepository.GetByID(ctx, role.RoleID)
}

// DeleteRole removes the role together with all of its assignments.
func (s *directoryService) DeleteRole(ctx context.Context, roleID int64) error {
	if _, err := s.roleRepository.GetByID(ctx, roleID); err != nil {
		return err
	}

	removed, err := s.roleRepository.Delete(ctx, roleID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: role %d", ErrDeleteFailed, roleID)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*directoryService.DeleteRole").
		Int64("role_id", roleID).
		Msg("role and its assignments deleted")
	return nil
}

func (s *directoryService) ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error) {
	if _, err := s.roleRepository.GetByID(ctx, roleID); err != nil {
		return nil, err
	}

	return s.roleRepository.GetUsersByRoleID(ctx, roleID)
}
