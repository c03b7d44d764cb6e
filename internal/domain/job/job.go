package job

import (
	"time"

	"jobfinder/internal/common"
)

type Job struct {
	ID          common.UUID  `json:"id"`
	CompanyID   common.UUID  `json:"company_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Skills      []string     `json:"skills"`
	Company     *CompanyInfo `json:"company,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CompanyInfo is the owning-company projection joined into listings.
type CompanyInfo struct {
	ID          common.UUID `json:"id"`
	Name        string      `json:"name"`
	CompanyName string      `json:"company_name,omitempty"`
}

// Filter narrows public job listings. Query matches the title as a
// case-insensitive substring; Skill is exact, case-sensitive membership in
// the skills array.
type Filter struct {
	Query string
	Skill string
}
