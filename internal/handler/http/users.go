package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/store"
	"github.com/MKhiriev/go-user-roles/internal/utils"
	"github.com/MKhiriev/go-user-roles/models"
)

// listUsers answers GET /users. With ?username= it returns the matching user
// as a one-element array, or an empty array when nobody has that name.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if query := r.URL.Query(); query.Has("username") {
		user, err := h.services.DirectoryService.GetUserByUsername(ctx, query.Get("username"))
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			utils.WriteJSON(w, []models.User{}, http.StatusOK)
		case err != nil:
			writeError(w, r, "error getting users", err)
		default:
			utils.WriteJSON(w, []models.User{user}, http.StatusOK)
		}
		return
	}

	users, err := h.services.DirectoryService.ListUsers(ctx)
	if err != nil {
		writeError(w, r, "error getting users", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, userIDParam)
	if err != nil {
		writeError(w, r, "invalid user id", err)
		return
	}

	user, err := h.services.DirectoryService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, "error getting user", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	user := models.User{Active: true}
	if err := decodeBody(r, &user); err != nil {
		writeError(w, r, "please provide user data in the request body", err)
		return
	}
	user.UserID = 0

	created, err := h.services.DirectoryService.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, "error creating user", err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", created.UserID).Msg("user created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, userIDParam)
	if err != nil {
		writeError(w, r, "invalid user id", err)
		return
	}

	user := models.User{Active: true}
	if err = decodeBody(r, &user); err != nil {
		writeError(w, r, "please provide user data in the request body", err)
		return
	}
	user.UserID = userID

	updated, err := h.services.DirectoryService.UpdateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, "error updating user", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, userIDParam)
	if err != nil {
		writeError(w, r, "invalid user id", err)
		return
	}

	if err = h.services.DirectoryService.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, r, "error deleting user", err)
		return
	}

	utils.WriteText(w, "user deleted successfully", http.StatusOK)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	userID, roleID, err := assignmentFromPath(r)
	if err != nil {
		writeError(w, r, "invalid user or role id", err)
		return
	}

	if err = h.services.DirectoryService.AssignRoleToUser(r.Context(), userID, roleID); err != nil {
		writeError(w, r, "error assigning role to user", err)
		return
	}

	utils.WriteText(w, "role assigned to user successfully", http.StatusOK)
}

func (h *Handler) unassignRole(w http.ResponseWriter, r *http.Request) {
	userID, roleID, err := assignmentFromPath(r)
	if err != nil {
		writeError(w, r, "invalid user or role id", err)
		return
	}

	if err = h.services.DirectoryService.UnassignRoleFromUser(r.Context(), userID, roleID); err != nil {
		writeError(w, r, "error removing role from user", err)
		return
	}

	utils.WriteText(w, "role removed from user successfully", http.StatusOK)
}

func (h *Handler) listUserAssignments(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r, userIDParam)
	if err != nil {
		writeError(w, r, "invalid user id", err)
		return
	}

	assignments, err := h.services.DirectoryService.ListUserAssignments(r.Context(), userID)
	if err != nil {
		writeError(w, r, "error getting assignments of user", err)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}

	utils.WriteJSON(w, assignments, http.StatusOK)
}

func assignmentFromPath(r *http.Request) (int64, int64, error) {
	userID, err := idFromPath(r, userIDParam)
	if err != nil {
		return 0, 0, err
	}

	roleID, err := idFromPath(r, roleIDParam)
	if err != nil {
		return 0, 0, err
	}

	return userID, roleID, nil
}
