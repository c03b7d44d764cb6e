package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `j.id, j.company_id, j.title, j.description, j.location, j.skills, j.created_at, u.id, u.name, u.company_name`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	j.CreatedAt = time.Now().UTC()
	if j.Skills == nil {
		j.Skills = []string{}
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, company_id, title, description, location, skills, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, pq.Array(j.Skills), j.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+`
		FROM jobs j JOIN users u ON u.id = j.company_id
		WHERE j.id = $1`, id)
	var j job.Job
	var company job.CompanyInfo
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, pq.Array(&j.Skills), &j.CreatedAt, &company.ID, &company.Name, &company.CompanyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	j.Company = &company
	return &j, nil
}

// List applies the public filters: Query is a case-insensitive title
// substring, Skill is exact case-sensitive membership in the skills array.
func (r *JobRepository) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs j JOIN users u ON u.id = j.company_id`
	var conditions []string
	var args []any
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		conditions = append(conditions, `j.title ILIKE $1`)
	}
	if skill := strings.TrimSpace(filter.Skill); skill != "" {
		args = append(args, skill)
		if len(args) == 1 {
			conditions = append(conditions, `$1 = ANY(j.skills)`)
		} else {
			conditions = append(conditions, `$2 = ANY(j.skills)`)
		}
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY j.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var j job.Job
		var company job.CompanyInfo
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, pq.Array(&j.Skills), &j.CreatedAt, &company.ID, &company.Name, &company.CompanyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		j.Company = &company
		items = append(items, j)
	}
	return items, nil
}
