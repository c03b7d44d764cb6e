package user

import (
	"time"

	"jobfinder/internal/common"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

type User struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Bio          string      `json:"bio"`
	Skills       []string    `json:"skills"`
	CompanyName  string      `json:"company_name,omitempty"`
	ResumeURL    string      `json:"resume_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Summary is the candidate projection attached to expanded application
// listings. The password hash never leaves the repository layer.
type Summary struct {
	ID        common.UUID `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Skills    []string    `json:"skills"`
	Bio       string      `json:"bio"`
	ResumeURL string      `json:"resume_url,omitempty"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Skills:    u.Skills,
		Bio:       u.Bio,
		ResumeURL: u.ResumeURL,
	}
}
