package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	userIDParam = "userId"
	roleIDParam = "roleId"
)

// idFromPath parses a non-negative decimal identity from the named chi URL
// parameter.
func idFromPath(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 || raw[0] == '+' {
		return 0, fmt.Errorf("%w: %s %q", errInvalidID, name, raw)
	}

	return id, nil
}

// decodeBody reads the whole request body into dst. Fields already set on
// dst survive when the payload omits them.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}

	return nil
}
