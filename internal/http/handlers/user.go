package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"jobfinder/internal/app"
	"jobfinder/internal/common"
	"jobfinder/internal/http/middleware"
	"jobfinder/internal/http/response"
	"jobfinder/internal/storage"
)

type UserHandler struct {
	users   *app.UserService
	resumes *storage.ResumeStore
}

func NewUserHandler(users *app.UserService, resumes *storage.ResumeStore) *UserHandler {
	return &UserHandler{users: users, resumes: resumes}
}

// skillsField accepts either a JSON list or a comma-separated string, the
// two shapes clients send for skills.
type skillsField struct {
	values []string
	set    bool
}

func (f *skillsField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		f.values = list
		f.set = true
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("skills must be a list or a comma-separated string")
	}
	f.values = app.SplitSkills(raw)
	f.set = true
	return nil
}

type updateProfileRequest struct {
	Name        *string     `json:"name"`
	Bio         *string     `json:"bio"`
	CompanyName *string     `json:"company_name"`
	Skills      skillsField `json:"skills"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	account, err := h.users.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var update app.ProfileUpdate
	var err error
	if isMultipart(r) {
		update, err = h.multipartUpdate(r, userID)
	} else {
		update, err = jsonUpdate(r)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func jsonUpdate(r *http.Request) (app.ProfileUpdate, error) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		return app.ProfileUpdate{}, err
	}
	return app.ProfileUpdate{
		Name:        req.Name,
		Bio:         req.Bio,
		CompanyName: req.CompanyName,
		Skills:      req.Skills.values,
		SkillsSet:   req.Skills.set,
	}, nil
}

func (h *UserHandler) multipartUpdate(r *http.Request, userID common.UUID) (app.ProfileUpdate, error) {
	if err := r.ParseMultipartForm(storage.MaxResumeSize); err != nil {
		return app.ProfileUpdate{}, common.NewValidationError("invalid multipart body", nil)
	}
	var update app.ProfileUpdate
	if values, ok := r.MultipartForm.Value["name"]; ok && len(values) > 0 {
		update.Name = &values[0]
	}
	if values, ok := r.MultipartForm.Value["bio"]; ok && len(values) > 0 {
		update.Bio = &values[0]
	}
	if values, ok := r.MultipartForm.Value["company_name"]; ok && len(values) > 0 {
		update.CompanyName = &values[0]
	}
	if values, ok := r.MultipartForm.Value["skills"]; ok && len(values) > 0 {
		update.Skills = app.SplitSkills(values[0])
		update.SkillsSet = true
	}
	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		url, err := h.resumes.Save(userID, header.Filename, file)
		if err != nil {
			return app.ProfileUpdate{}, err
		}
		update.ResumeURL = &url
	} else if !errors.Is(err, http.ErrMissingFile) {
		return app.ProfileUpdate{}, common.NewValidationError("invalid resume upload", nil)
	}
	return update, nil
}
