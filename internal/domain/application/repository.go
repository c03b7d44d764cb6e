package application

import (
	"context"
	"time"

	"jobfinder/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Details, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Details, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Details, error)
	UpdateDecision(ctx context.Context, id common.UUID, status Status, companyMessage string, decidedAt time.Time) (*Application, error)
}
