package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-user-roles/internal/mock"
	"github.com/MKhiriev/go-user-roles/internal/validators"
	"github.com/MKhiriev/go-user-roles/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newValidatedSvc(t *testing.T) (DirectoryService, *mock.MockDirectoryService) {
	t.Helper()
	inner := mock.NewMockDirectoryService(gomock.NewController(t))
	return NewDirectoryValidationService().Wrap(inner), inner
}

func validUser() models.User {
	return models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", Active: true}
}

func TestDirectoryValidationService_CreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(u *models.User)
		wantErr error
	}{
		{name: "blank username", mutate: func(u *models.User) { u.Username = "  " }, wantErr: validators.ErrEmptyUsername},
		{name: "blank email", mutate: func(u *models.User) { u.Email = "" }, wantErr: validators.ErrEmptyEmail},
		{name: "blank password hash", mutate: func(u *models.User) { u.PasswordHash = "" }, wantErr: validators.ErrEmptyPasswordHash},
		{name: "negative role id", mutate: func(u *models.User) { u.Roles = []models.Role{{RoleID: -1}} }, wantErr: validators.ErrInvalidRoleInSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newValidatedSvc(t)
			user := validUser()
			tt.mutate(&user)

			_, err := svc.CreateUser(ctx, user)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("valid user reaches inner service", func(t *testing.T) {
		svc, inner := newValidatedSvc(t)
		user := validUser()
		inner.EXPECT().CreateUser(ctx, user).Return(models.User{UserID: 5}, nil)

		got, err := svc.CreateUser(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.UserID)
	})
}

func TestDirectoryValidationService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	svc, inner := newValidatedSvc(t)
	bad := validUser()
	bad.UserID = -3

	_, err := svc.UpdateUser(ctx, bad)
	assert.ErrorIs(t, err, validators.ErrInvalidUserID)

	good := validUser()
	good.UserID = 2
	inner.EXPECT().UpdateUser(ctx, good).Return(good, nil)

	_, err = svc.UpdateUser(ctx, good)
	require.NoError(t, err)
}

func TestDirectoryValidationService_Roles(t *testing.T) {
	ctx := context.Background()

	t.Run("create rejects blank name", func(t *testing.T) {
		svc, _ := newValidatedSvc(t)
		_, err := svc.CreateRole(ctx, models.Role{RoleName: ""})
		assert.ErrorIs(t, err, validators.ErrEmptyRoleName)
	})

	t.Run("create ignores caller supplied id", func(t *testing.T) {
		svc, inner := newValidatedSvc(t)
		role := models.Role{RoleID: -8, RoleName: "AUDITOR"}
		inner.EXPECT().CreateRole(ctx, role).Return(models.Role{RoleID: 4, RoleName: "AUDITOR"}, nil)

		_, err := svc.CreateRole(ctx, role)
		require.NoError(t, err)
	})

	t.Run("update rejects negative id", func(t *testing.T) {
		svc, _ := newValidatedSvc(t)
		_, err := svc.UpdateRole(ctx, models.Role{RoleID: -1, RoleName: "X"})
		assert.ErrorIs(t, err, validators.ErrInvalidRoleID)
	})
}

func TestDirectoryValidationService_PassThrough(t *testing.T) {
	ctx := context.Background()
	svc, inner := newValidatedSvc(t)

	inner.EXPECT().ListUsers(ctx).Return(nil, nil)
	inner.EXPECT().GetUser(ctx, int64(1)).Return(models.User{}, nil)
	inner.EXPECT().GetUserByUsername(ctx, "admin").Return(models.User{}, nil)
	inner.EXPECT().DeleteUser(ctx, int64(1)).Return(nil)
	inner.EXPECT().AssignRoleToUser(ctx, int64(1), int64(2)).Return(nil)
	inner.EXPECT().UnassignRoleFromUser(ctx, int64(1), int64(2)).Return(nil)
	inner.EXPECT().ListUserAssignments(ctx, int64(1)).Return(nil, nil)
	inner.EXPECT().ListRoles(ctx).Return(nil, nil)
	inner.EXPECT().GetRole(ctx, int64(2)).Return(models.Role{}, nil)
	inner.EXPECT().GetRoleByName(ctx, "USER").Return(models.Role{}, nil)
	inner.EXPECT().DeleteRole(ctx, int64(2)).Return(nil)
	inner.EXPECT().ListRoleUsers(ctx, int64(2)).Return(nil, nil)

	_, _ = svc.ListUsers(ctx)
	_, _ = svc.GetUser(ctx, 1)
	_, _ = svc.GetUserByUsername(ctx, "admin")
	_ = svc.DeleteUser(ctx, 1)
	_ = svc.AssignRoleToUser(ctx, 1, 2)
	_ = svc.UnassignRoleFromUser(ctx, 1, 2)
	_, _ = svc.ListUserAssignments(ctx, 1)
	_, _ = svc.ListRoles(ctx)
	_, _ = svc.GetRole(ctx, 2)
	_, _ = svc.GetRoleByName(ctx, "USER")
	_ = svc.DeleteRole(ctx, 2)
	_, _ = svc.ListRoleUsers(ctx, 2)
}
