package app

import (
	"context"
	"strings"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/user"
)

type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

// ProfileUpdate carries the fields a PUT /users/me may change. Nil pointers
// leave the stored value untouched; Skills applies only when SkillsSet is
// true, so an explicit empty list clears them.
type ProfileUpdate struct {
	Name        *string
	Bio         *string
	CompanyName *string
	Skills      []string
	SkillsSet   bool
	ResumeURL   *string
}

func (s *UserService) Get(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID common.UUID, update ProfileUpdate) (*user.User, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		account.Name = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		account.Bio = *update.Bio
	}
	if update.CompanyName != nil {
		account.CompanyName = strings.TrimSpace(*update.CompanyName)
	}
	if update.SkillsSet {
		account.Skills = normalizeSkills(update.Skills)
	}
	if update.ResumeURL != nil {
		account.ResumeURL = *update.ResumeURL
	}
	return s.users.Update(ctx, *account)
}
