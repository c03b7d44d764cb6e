package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"jobfinder/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return common.NewValidationError("invalid json body", nil)
	}
	return nil
}

// idFromPath extracts the path segment at index, counted from the first
// segment after the leading slash, and parses it as a UUID.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(segments) {
		return "", common.NewValidationError("invalid path", nil)
	}
	parsed, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
