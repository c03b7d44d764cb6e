package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Skills == nil {
		u.Skills = []string{}
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, role, bio, skills, company_name, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Bio, pq.Array(u.Skills), u.CompanyName, u.ResumeURL, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, role, bio, skills, company_name, resume_url, created_at, updated_at
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, role, bio, skills, company_name, resume_url, created_at, updated_at
		FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	u.UpdatedAt = time.Now().UTC()
	if u.Skills == nil {
		u.Skills = []string{}
	}
	result, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1, bio = $2, skills = $3, company_name = $4, resume_url = $5, updated_at = $6
		WHERE id = $7`,
		u.Name, u.Bio, pq.Array(u.Skills), u.CompanyName, u.ResumeURL, u.UpdatedAt, u.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, u.ID)
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Bio, pq.Array(&u.Skills), &u.CompanyName, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
