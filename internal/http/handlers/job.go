package handlers

import (
	"net/http"
	"time"

	"jobfinder/internal/app"
	"jobfinder/internal/common"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/http/middleware"
	"jobfinder/internal/http/response"
)

type JobHandler struct {
	jobs         *app.JobService
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewJobHandler(jobs *app.JobService, applications *app.ApplicationService, limiter middleware.Limiter) *JobHandler {
	return &JobHandler{jobs: jobs, applications: applications, limiter: limiter}
}

type jobRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Skills      skillsField `json:"skills"`
}

type applyRequest struct {
	Message string `json:"message"`
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := job.Filter{
		Query: r.URL.Query().Get("q"),
		Skill: r.URL.Query().Get("skill"),
	}
	items, err := h.jobs.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Job{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Skills:      req.Skills.values,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + candidateID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	var req applyRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, err)
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), jobID, candidateID, req.Message)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListForJob(r.Context(), jobID, companyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
