package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/service"
	"github.com/MKhiriev/go-user-roles/internal/store"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorStatus{
	{errInvalidID, http.StatusBadRequest},
	{errEmptyBody, http.StatusBadRequest},
	{errInvalidJSON, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrRoleNotFound, http.StatusNotFound},
	{service.ErrAssignmentNotFound, http.StatusNotFound},

	{service.ErrUpdateFailed, http.StatusInternalServerError},
	{service.ErrDeleteFailed, http.StatusInternalServerError},
	{store.ErrConstraintViolation, http.StatusInternalServerError},
	{store.ErrConnection, http.StatusInternalServerError},
	{store.ErrNothingCreated, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err with the request-scoped logger and answers with the
// mapped status and a text body prefixed by action.
func writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", status).Msg(action)

	http.Error(w, fmt.Sprintf("%s: %v", action, err), status)
}
