package job

import (
	"context"

	"jobfinder/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context, filter Filter) ([]Job, error)
}
