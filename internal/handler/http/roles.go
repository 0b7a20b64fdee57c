package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-roles/internal/store"
	"github.com/MKhiriev/go-user-roles/internal/utils"
	"github.com/MKhiriev/go-user-roles/models"
)

// listRoles answers GET /roles, narrowed to one role by ?name=.
func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if query := r.URL.Query(); query.Has("name") {
		role, err := h.services.DirectoryService.GetRoleByName(ctx, query.Get("name"))
		switch {
		case errors.Is(err, store.ErrRoleNotFound):
			utils.WriteJSON(w, []models.Role{}, http.StatusOK)
		case err != nil:
			writeError(w, r, "error getting roles", err)
		default:
			utils.WriteJSON(w, []models.Role{role}, http.StatusOK)
		}
		return
	}

	roles, err := h.services.DirectoryService.ListRoles(ctx)
	if err != nil {
		writeError(w, r, "error getting roles", err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	utils.WriteJSON(w, roles, http.StatusOK)
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := idFromPath(r, roleIDParam)
	if err != nil {
		writeError(w, r, "invalid role id", err)
		return
	}

	role, err := h.services.DirectoryService.GetRole(r.Context(), roleID)
	if err != nil {
		writeError(w, r, "error getting role", err)
		return
	}

	utils.WriteJSON(w, role, http.StatusOK)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var role models.Role
	if err := decodeBody(r, &role); err != nil {
		writeError(w, r, "please provide role data in the request body", err)
		return
	}
	role.RoleID = 0

	created, err := h.services.DirectoryService.CreateRole(r.Context(), role)
	if err != nil {
		writeError(w, r, "error creating role", err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := idFromPath(r, roleIDParam)
	if err != nil {
		writeError(w, r, "invalid role id", err)
		return
	}

	var role models.Role
	if err = decodeBody(r, &role); err != nil {
		writeError(w, r, "please provide role data in the request body", err)
		return
	}
	role.RoleID = roleID

	updated, err := h.services.DirectoryService.UpdateRole(r.Context(), role)
	if err != nil {
		writeError(w, r, "error updating role", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := idFromPath(r, roleIDParam)
	if err != nil {
		writeError(w, r, "invalid role id", err)
		return
	}

	if err = h.services.DirectoryService.DeleteRole(r.Context(), roleID); err != nil {
		writeError(w, r, "error deleting role", err)
		return
	}

	utils.WriteText(w, "role deleted successfully", http.StatusOK)
}

func (h *Handler) listRoleUsers(w http.ResponseWriter, r *http.Request) {
	roleID, err := idFromPath(r, roleIDParam)
	if err != nil {
		writeError(w, r, "invalid role id", err)
		return
	}

	users, err := h.services.DirectoryService.ListRoleUsers(r.Context(), roleID)
	if err != nil {
		writeError(w, r, "error getting users of role", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
