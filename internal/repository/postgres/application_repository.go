package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/domain/user"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.candidate_id, a.message, a.company_message, a.status, a.applied_at, a.decision_at`

const expandedColumns = applicationColumns + `,
	j.id, j.company_id, j.title, j.description, j.location, j.skills, j.created_at, o.id, o.name, o.company_name,
	c.id, c.name, c.email, c.skills, c.bio, c.resume_url`

const expandedJoins = `
	JOIN jobs j ON j.id = a.job_id
	JOIN users o ON o.id = j.company_id
	JOIN users c ON c.id = a.candidate_id`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, candidate_id, message, company_message, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.JobID, app.CandidateID, app.Message, app.CompanyMessage, app.Status, app.AppliedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.job_id = $1 AND a.candidate_id = $2`, jobID, candidateID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Details, error) {
	return r.listExpanded(ctx, `SELECT `+expandedColumns+`
		FROM applications a`+expandedJoins+`
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`, jobID)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Details, error) {
	return r.listExpanded(ctx, `SELECT `+expandedColumns+`
		FROM applications a`+expandedJoins+`
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC`, candidateID)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Details, error) {
	return r.listExpanded(ctx, `SELECT `+expandedColumns+`
		FROM applications a`+expandedJoins+`
		WHERE j.company_id = $1
		ORDER BY a.applied_at DESC`, companyID)
}

func (r *ApplicationRepository) UpdateDecision(ctx context.Context, id common.UUID, status application.Status, companyMessage string, decidedAt time.Time) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, company_message = $2, decision_at = $3 WHERE id = $4`,
		status, companyMessage, decidedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) listExpanded(ctx context.Context, query string, arg any) ([]application.Details, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Details
	for rows.Next() {
		var d application.Details
		var j job.Job
		var owner job.CompanyInfo
		var candidate user.Summary
		var decisionAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.JobID, &d.CandidateID, &d.Message, &d.CompanyMessage, &d.Status, &d.AppliedAt, &decisionAt,
			&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, pq.Array(&j.Skills), &j.CreatedAt, &owner.ID, &owner.Name, &owner.CompanyName,
			&candidate.ID, &candidate.Name, &candidate.Email, pq.Array(&candidate.Skills), &candidate.Bio, &candidate.ResumeURL,
		); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		if decisionAt.Valid {
			t := decisionAt.Time
			d.DecisionAt = &t
		}
		j.Company = &owner
		d.Job = &j
		d.Candidate = &candidate
		items = append(items, d)
	}
	return items, nil
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	var decisionAt sql.NullTime
	if err := row.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Message, &app.CompanyMessage, &app.Status, &app.AppliedAt, &decisionAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if decisionAt.Valid {
		t := decisionAt.Time
		app.DecisionAt = &t
	}
	return &app, nil
}
