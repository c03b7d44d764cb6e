package handlers

import (
	"net/http"
	"time"

	"jobfinder/internal/app"
	"jobfinder/internal/common"
	"jobfinder/internal/domain/user"
	"jobfinder/internal/http/middleware"
	"jobfinder/internal/http/response"
)

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        string      `json:"role"`
	Bio         string      `json:"bio"`
	Skills      skillsField `json:"skills"`
	CompanyName string      `json:"company_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allow("register:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Register(r.Context(), app.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Bio:         req.Bio,
		Skills:      req.Skills.values,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, authResponse{Token: result.Token, ExpiresAt: result.ExpiresAt, User: result.User})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow("login:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, authResponse{Token: result.Token, ExpiresAt: result.ExpiresAt, User: result.User})
}

func (h *AuthHandler) allow(key string, limit int, window time.Duration) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow(key, limit, window)
}
