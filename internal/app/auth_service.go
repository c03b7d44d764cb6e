package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/user"
	"jobfinder/internal/security"
)

type AuthService struct {
	users       user.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
	tokenTTL    time.Duration
}

func NewAuthService(users user.Repository, jwtProvider *security.JWTProvider, logger Logger, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtProvider: jwtProvider, logger: logger, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Bio         string
	Skills      []string
	CompanyName string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, common.NewValidationError("email and password are required", map[string]string{"email": "required", "password": "required"})
	}
	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already exists", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Bio:          input.Bio,
		Skills:       normalizeSkills(input.Skills),
		CompanyName:  strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user registered user_id=%s role=%s", created.ID, created.Role))
	return s.issueToken(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("email and password are required", map[string]string{"email": "required", "password": "required"})
	}
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(password, account.PasswordHash) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return s.issueToken(account)
}

func (s *AuthService) issueToken(account *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}

func normalizeRole(value string) (user.Role, error) {
	role := user.Role(strings.ToLower(strings.TrimSpace(value)))
	if role == "" {
		return user.RoleCandidate, nil
	}
	if role != user.RoleCandidate && role != user.RoleCompany {
		return "", common.NewValidationError("invalid role", map[string]string{"role": "role must be candidate or company"})
	}
	return role, nil
}
