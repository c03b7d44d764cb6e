package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobfinder/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

// SetErrorCollector wires the metrics collector counted on error responses.
func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Error(w http.ResponseWriter, err error) {
	if errorCollector != nil {
		errorCollector.IncErrors()
	}
	var coded *common.Error
	if errors.As(err, &coded) {
		JSON(w, statusForCode(coded.Code), errorBody{Message: coded.Message, Fields: coded.Fields})
		return
	}
	JSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
}

func statusForCode(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
