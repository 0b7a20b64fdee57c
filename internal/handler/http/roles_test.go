package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-user-roles/internal/service"
	"github.com/MKhiriev/go-user-roles/internal/store"
	"github.com/MKhiriev/go-user-roles/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoles(t *testing.T) {
	h := newTestHandler(&mockDirectoryService{
		listRolesFn: func(_ context.Context) ([]models.Role, error) {
			return []models.Role{{RoleID: 1, RoleName: "ADMIN"}, {RoleID: 2, RoleName: "USER"}}, nil
		},
		getRoleByNameFn: func(_ context.Context, name string) (models.Role, error) {
			if name == "USER" {
				return models.Role{RoleID: 2, RoleName: name}, nil
			}
			return models.Role{}, store.ErrRoleNotFound
		},
	})

	rr := serve(t, h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.Role
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	rr = serve(t, h, http.MethodGet, "/roles?name=USER", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].RoleID)

	rr = serve(t, h, http.MethodGet, "/roles?name=NOPE", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestGetRole(t *testing.T) {
	h := newTestHandler(&mockDirectoryService{
		getRoleFn: func(_ context.Context, roleID int64) (models.Role, error) {
			if roleID == 1 {
				return models.Role{RoleID: 1, RoleName: "ADMIN"}, nil
			}
			return models.Role{}, store.ErrRoleNotFound
		},
	})

	rr := serve(t, h, http.MethodGet, "/roles/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"roleName":"ADMIN"`)
	assert.Contains(t, rr.Body.String(), `"description":null`)

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/roles/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/roles/one", "").Code)
}

func TestCreateRole(t *testing.T) {
	var received models.Role
	h := newTestHandler(&mockDirectoryService{
		createRoleFn: func(_ context.Context, role models.Role) (models.Role, error) {
			received = role
			if role.RoleName == "" {
				return models.Role{}, fmt.Errorf("%w: blank name", service.ErrInvalidDataProvided)
			}
			role.RoleID = 4
			return role, nil
		},
	})

	rr := serve(t, h, http.MethodPost, "/roles", `{"roleId":12,"roleName":"AUDITOR","description":"reads logs"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, int64(0), received.RoleID)
	require.NotNil(t, received.Description)
	assert.Equal(t, "reads logs", *received.Description)
	assert.Contains(t, rr.Body.String(), `"roleId":4`)

	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/roles", `{"roleName":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/roles", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/roles", "[1,2]").Code)
}

func TestUpdateRole(t *testing.T) {
	var received models.Role
	h := newTestHandler(&mockDirectoryService{
		updateRoleFn: func(_ context.Context, role models.Role) (models.Role, error) {
			received = role
			if role.RoleID == 5 {
				return models.Role{}, store.ErrRoleNotFound
			}
			return role, nil
		},
	})

	rr := serve(t, h, http.MethodPut, "/roles/2", `{"roleName":"MEMBER"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(2), received.RoleID)
	assert.Equal(t, "MEMBER", received.RoleName)

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodPut, "/roles/5", `{"roleName":"X"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPut, "/roles/2", "").Code)
}

func TestDeleteRole(t *testing.T) {
	h := newTestHandler(&mockDirectoryService{
		deleteRoleFn: func(_ context.Context, roleID int64) error {
			switch roleID {
			case 1:
				return nil
			case 2:
				return fmt.Errorf("%w: connection lost", store.ErrCommitingTransaction)
			default:
				return store.ErrRoleNotFound
			}
		},
	})

	rr := serve(t, h, http.MethodDelete, "/roles/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "role deleted successfully", rr.Body.String())

	assert.Equal(t, http.StatusInternalServerError, serve(t, h, http.MethodDelete, "/roles/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodDelete, "/roles/3", "").Code)
}

func TestListRoleUsers(t *testing.T) {
	h := newTestHandler(&mockDirectoryService{
		listRoleUsersFn: func(_ context.Context, roleID int64) ([]models.User, error) {
			switch roleID {
			case 1:
				return []models.User{{UserID: 1, Username: "admin"}}, nil
			case 2:
				return nil, nil
			default:
				return nil, store.ErrRoleNotFound
			}
		},
	})

	rr := serve(t, h, http.MethodGet, "/roles/1/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"admin"`)
	assert.NotContains(t, rr.Body.String(), `"roles"`)

	rr = serve(t, h, http.MethodGet, "/roles/2/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/roles/7/users", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/roles/x/users", "").Code)
}
