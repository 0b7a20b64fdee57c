package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/service"
	"github.com/MKhiriev/go-user-roles/models"
)

// ---- Mock: AppInfoService ----

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ---- Mock: DirectoryService ----

type mockDirectoryService struct {
	listUsersFn         func(ctx context.Context) ([]models.User, error)
	getUserFn           func(ctx context.Context, userID int64) (models.User, error)
	getUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	createUserFn        func(ctx context.Context, user models.User) (models.User, error)
	updateUserFn        func(ctx context.Context, user models.User) (models.User, error)
	deleteUserFn        func(ctx context.Context, userID int64) error
	assignFn            func(ctx context.Context, userID, roleID int64) error
	unassignFn          func(ctx context.Context, userID, roleID int64) error
	listAssignmentsFn   func(ctx context.Context, userID int64) ([]models.Assignment, error)

	listRolesFn     func(ctx context.Context) ([]models.Role, error)
	getRoleFn       func(ctx context.Context, roleID int64) (models.Role, error)
	getRoleByNameFn func(ctx context.Context, name string) (models.Role, error)
	createRoleFn    func(ctx context.Context, role models.Role) (models.Role, error)
	updateRoleFn    func(ctx context.Context, role models.Role) (models.Role, error)
	deleteRoleFn    func(ctx context.Context, roleID int64) error
	listRoleUsersFn func(ctx context.Context, roleID int64) ([]models.User, error)
}

func (m *mockDirectoryService) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockDirectoryService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockDirectoryService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(ctx, username)
	}
	return models.User{Username: username}, nil
}

func (m *mockDirectoryService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockDirectoryService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockDirectoryService) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockDirectoryService) AssignRoleToUser(ctx context.Context, userID, roleID int64) error {
	if m.assignFn != nil {
		return m.assignFn(ctx, userID, roleID)
	}
	return nil
}

func (m *mockDirectoryService) UnassignRoleFromUser(ctx context.Context, userID, roleID int64) error {
	if m.unassignFn != nil {
		return m.unassignFn(ctx, userID, roleID)
	}
	return nil
}

func (m *mockDirectoryService) ListRoles(ctx context.Context) ([]models.Role, error) {
	if m.listRolesFn != nil {
		return m.listRolesFn(ctx)
	}
	return nil, nil
}

func (m *mockDirectoryService) GetRole(ctx context.Context, roleID int64) (models.Role, error) {
	if m.getRoleFn != nil {
		return m.getRoleFn(ctx, roleID)
	}
	return models.Role{RoleID: roleID}, nil
}

func (m *mockDirectoryService) GetRoleByName(ctx context.Context, name string) (models.Role, error) {
	if m.getRoleByNameFn != nil {
		return m.getRoleByNameFn(ctx, name)
	}
	return models.Role{RoleName: name}, nil
}

func (m *mockDirectoryService) CreateRole(ctx context.Context, role models.Role) (models.Role, error) {
	if m.createRoleFn != nil {
		return m.createRoleFn(ctx, role)
	}
	return role, nil
}

func (m *mockDirectoryService) UpdateRole(ctx context.Context, role models.Role) (models.Role, error) {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, role)
	}
	return role, nil
}

func (m *mockDirectoryService) DeleteRole(ctx context.Context, roleID int64) error {
	if m.deleteRoleFn != nil {
		return m.deleteRoleFn(ctx, roleID)
	}
	return nil
}

func (m *mockDirectoryService) ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error) {
	if m.listRoleUsersFn != nil {
		return m.listRoleUsersFn(ctx, roleID)
	}
	return nil, nil
}

func (m *mockDirectoryService) ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	if m.listAssignmentsFn != nil {
		return m.listAssignmentsFn(ctx, userID)
	}
	return nil, nil
}

// ---- Helpers ----

// newTestHandler builds a Handler with a nop logger and the given directory
// stub.
func newTestHandler(directory service.DirectoryService) *Handler {
	if directory == nil {
		directory = &mockDirectoryService{}
	}

	return NewHandler(&service.Services{
		DirectoryService: directory,
		AppInfoService:   &mockAppInfoService{version: "test-version"},
	}, logger.Nop())
}

// serve runs one request through the full router.
func serve(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	return rr
}
