package handlers

import (
	"net/http"

	"jobfinder/internal/app"
	"jobfinder/internal/common"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/http/middleware"
	"jobfinder/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
}

func NewApplicationHandler(applications *app.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type decisionRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *ApplicationHandler) ListCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForCompany(r.Context(), companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForCandidate(r.Context(), candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("status is required", map[string]string{"status": "required"}))
		return
	}
	updated, err := h.applications.Decide(r.Context(), applicationID, companyID, application.Status(req.Status), req.Message)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
