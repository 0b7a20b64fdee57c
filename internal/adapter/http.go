package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/utils"
	"github.com/MKhiriev/go-user-roles/models"
	"github.com/go-resty/resty/v2"
)

type httpDirectoryAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPDirectoryAdapter constructs the resty implementation of
// [DirectoryAdapter]. adapterCfg.HTTPAddress may omit the scheme, in which
// case http is assumed.
//
// Returns [ErrInvalidAddress] if the address is empty or cannot be parsed.
func NewHTTPDirectoryAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (DirectoryAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpDirectoryAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpDirectoryAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}

// do sends the prepared request and maps non-2xx answers to sentinel errors.
func (h *httpDirectoryAdapter) do(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("func", "*httpDirectoryAdapter.do").
			Str("op", op).
			Int("status", resp.StatusCode()).
			Msg("directory API returned an error")
		return resp, err
	}

	return resp, nil
}

func (h *httpDirectoryAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.do(h.request(ctx), resty.MethodGet, "/version", "version")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func (h *httpDirectoryAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := h.do(h.request(ctx).SetResult(&users), resty.MethodGet, "/users", "list users"); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpDirectoryAdapter) FindUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var users []models.User
	req := h.request(ctx).SetQueryParam("username", username).SetResult(&users)
	if _, err := h.do(req, resty.MethodGet, "/users", "find users"); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpDirectoryAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User
	req := h.request(ctx).SetPathParam("userId", id(userID)).SetResult(&user)
	if _, err := h.do(req, resty.MethodGet, "/users/{userId}", "get user"); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpDirectoryAdapter) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&created)
	if _, err := h.do(req, resty.MethodPost, "/users", "create user"); err != nil {
		return models.User{}, err
	}

	return created, nil
}

func (h *httpDirectoryAdapter) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	var updated models.User
	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("userId", id(user.UserID)).
		SetBody(user).
		SetResult(&updated)
	if _, err := h.do(req, resty.MethodPut, "/users/{userId}", "update user"); err != nil {
		return models.User{}, err
	}

	return updated, nil
}

func (h *httpDirectoryAdapter) DeleteUser(ctx context.Context, userID int64) error {
	req := h.request(ctx).SetPathParam("userId", id(userID))
	_, err := h.do(req, resty.MethodDelete, "/users/{userId}", "delete user")
	return err
}

func (h *httpDirectoryAdapter) AssignRole(ctx context.Context, userID, roleID int64) error {
	req := h.request(ctx).SetPathParams(map[string]string{"userId": id(userID), "roleId": id(roleID)})
	_, err := h.do(req, resty.MethodPost, "/users/{userId}/roles/{roleId}", "assign role")
	return err
}

func (h *httpDirectoryAdapter) UnassignRole(ctx context.Context, userID, roleID int64) error {
	req := h.request(ctx).SetPathParams(map[string]string{"userId": id(userID), "roleId": id(roleID)})
	_, err := h.do(req, resty.MethodDelete, "/users/{userId}/roles/{roleId}", "unassign role")
	return err
}

// ── roles ─────────────────────────────────────────────────────────────────────

func (h *httpDirectoryAdapter) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if _, err := h.do(h.request(ctx).SetResult(&roles), resty.MethodGet, "/roles", "list roles"); err != nil {
		return nil, err
	}

	return roles, nil
}

func (h *httpDirectoryAdapter) FindRolesByName(ctx context.Context, name string) ([]models.Role, error) {
	var roles []models.Role
	req := h.request(ctx).SetQueryParam("name", name).SetResult(&roles)
	if _, err := h.do(req, resty.MethodGet, "/roles", "find roles"); err != nil {
		return nil, err
	}

	return roles, nil
}

func (h *httpDirectoryAdapter) GetRole(ctx context.Context, roleID int64) (models.Role, error) {
	var role models.Role
	req := h.request(ctx).SetPathParam("roleId", id(roleID)).SetResult(&role)
	if _, err := h.do(req, resty.MethodGet, "/roles/{roleId}", "get role"); err != nil {
		return models.Role{}, err
	}

	return role, nil
}

func (h *httpDirectoryAdapter) CreateRole(ctx context.Context, role models.Role) (models.Role, error) {
	var created models.Role
	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(role).
		SetResult(&created)
	if _, err := h.do(req, resty.MethodPost, "/roles", "create role"); err != nil {
		return models.Role{}, err
	}

	return created, nil
}

func (h *httpDirectoryAdapter) UpdateRole(ctx context.Context, role models.Role) (models.Role, error) {
	var updated models.Role
	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("roleId", id(role.RoleID)).
		SetBody(role).
		SetResult(&updated)
	if _, err := h.do(req, resty.MethodPut, "/roles/{roleId}", "update role"); err != nil {
		return models.Role{}, err
	}

	return updated, nil
}

func (h *httpDirectoryAdapter) DeleteRole(ctx context.Context, roleID int64) error {
	req := h.request(ctx).SetPathParam("roleId", id(roleID))
	_, err := h.do(req, resty.MethodDelete, "/roles/{roleId}", "delete role")
	return err
}

func (h *httpDirectoryAdapter) ListRoleUsers(ctx context.Context, roleID int64) ([]models.User, error) {
	var users []models.User
	req := h.request(ctx).SetPathParam("roleId", id(roleID)).SetResult(&users)
	if _, err := h.do(req, resty.MethodGet, "/roles/{roleId}/users", "list role users"); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpDirectoryAdapter) ListUserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	req := h.request(ctx).SetPathParam("userId", id(userID)).SetResult(&assignments)
	if _, err := h.do(req, resty.MethodGet, "/users/{userId}/roles", "list user assignments"); err != nil {
		return nil, err
	}

	return assignments, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
