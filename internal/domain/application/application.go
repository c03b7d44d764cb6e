package application

import (
	"time"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusRejected Status = "rejected"
	StatusAccepted Status = "accepted"
)

type Application struct {
	ID             common.UUID `json:"id"`
	JobID          common.UUID `json:"job_id"`
	CandidateID    common.UUID `json:"candidate_id"`
	Message        string      `json:"message,omitempty"`
	CompanyMessage string      `json:"company_message,omitempty"`
	Status         Status      `json:"status"`
	AppliedAt      time.Time   `json:"applied_at"`
	DecisionAt     *time.Time  `json:"decision_at,omitempty"`
}

// Details expands an application with its job and candidate summary for
// company and candidate listings.
type Details struct {
	Application
	Job       *job.Job      `json:"job,omitempty"`
	Candidate *user.Summary `json:"candidate,omitempty"`
}
