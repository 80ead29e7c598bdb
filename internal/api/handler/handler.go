// Package handler translates HTTP requests into service calls and service
// results into the response envelopes.
package handler

import (
	"encoding/json"
	"net/http"

	"inkwell/internal/common"
)

// respondError maps a service error onto the error envelope, hiding internal
// detail behind a generic message for 5xx responses.
func respondError(w http.ResponseWriter, err error) {
	code := common.HTTPStatusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	common.RespondWithError(w, code, message)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Errorf("invalid request body: %w", common.ErrBadRequest)
	}
	return nil
}
