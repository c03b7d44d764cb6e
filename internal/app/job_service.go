package app

import (
	"context"
	"strings"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/job"
)

type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return nil, common.NewValidationError("title is required", map[string]string{"title": "required"})
	}
	j.Skills = normalizeSkills(j.Skills)
	return s.repo.Create(ctx, j)
}

func (s *JobService) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Skill = strings.TrimSpace(filter.Skill)
	return s.repo.List(ctx, filter)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}
