package app

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/domain/user"
	"jobfinder/internal/mail"
)

// Publisher pushes an event to a user's realtime channel.
type Publisher interface {
	Publish(userID common.UUID, event any)
}

type ApplicationService struct {
	repo          application.Repository
	jobs          job.Repository
	users         user.Repository
	mailer        mail.Sender
	events        Publisher
	logger        Logger
	notifyTimeout time.Duration
}

func NewApplicationService(repo application.Repository, jobs job.Repository, users user.Repository, mailer mail.Sender, events Publisher, logger Logger) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		jobs:          jobs,
		users:         users,
		mailer:        mailer,
		events:        events,
		logger:        logger,
		notifyTimeout: 10 * time.Second,
	}
}

func (s *ApplicationService) Apply(ctx context.Context, jobID, candidateID common.UUID, message string) (*application.Application, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	// the unique (job_id, candidate_id) index backstops the check above, so
	// a concurrent duplicate still surfaces as a conflict
	return s.repo.Create(ctx, application.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Message:     message,
		Status:      application.StatusPending,
	})
}

func (s *ApplicationService) ListForCandidate(ctx context.Context, candidateID common.UUID) ([]application.Details, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

func (s *ApplicationService) ListForCompany(ctx context.Context, companyID common.UUID) ([]application.Details, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ApplicationService) ListForJob(ctx context.Context, jobID, companyID common.UUID) ([]application.Details, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "only the owning company can view applications", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

// Decide persists the company's decision, then attempts the candidate
// notification. The decision is durable once the update commits; a failed
// email is logged and never rolls it back or fails the call.
func (s *ApplicationService) Decide(ctx context.Context, applicationID, companyID common.UUID, status application.Status, message string) (*application.Application, error) {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !isDecisionStatus(normalized) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be accepted, rejected, or reviewed"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "only the owning company can change status", nil)
	}
	companyMessage := app.CompanyMessage
	if message != "" {
		companyMessage = message
	}
	updated, err := s.repo.UpdateDecision(ctx, app.ID, normalized, companyMessage, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	go s.notifyDecision(j, updated, message)
	return updated, nil
}

func isDecisionStatus(status application.Status) bool {
	switch status {
	case application.StatusAccepted, application.StatusRejected, application.StatusReviewed:
		return true
	default:
		return false
	}
}

type decisionEvent struct {
	Type           string             `json:"type"`
	ApplicationID  common.UUID        `json:"application_id"`
	JobID          common.UUID        `json:"job_id"`
	JobTitle       string             `json:"job_title"`
	Status         application.Status `json:"status"`
	CompanyMessage string             `json:"company_message,omitempty"`
}

func (s *ApplicationService) notifyDecision(j *job.Job, app *application.Application, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if s.events != nil {
		s.events.Publish(app.CandidateID, decisionEvent{
			Type:           "application.decision",
			ApplicationID:  app.ID,
			JobID:          j.ID,
			JobTitle:       j.Title,
			Status:         app.Status,
			CompanyMessage: message,
		})
	}

	candidate, err := s.users.GetByID(ctx, app.CandidateID)
	if err != nil {
		s.logError(fmt.Sprintf("decision email skipped, candidate lookup failed application_id=%s: %v", app.ID, err))
		return
	}
	if candidate.Email == "" {
		s.logInfo(fmt.Sprintf("decision email skipped, no candidate email application_id=%s", app.ID))
		return
	}
	subject, body := composeDecisionEmail(j, candidate, app.Status, message)
	if err := s.mailer.Send(ctx, candidate.Email, subject, body); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			s.logInfo(fmt.Sprintf("decision email skipped, smtp not configured application_id=%s", app.ID))
			return
		}
		s.logError(fmt.Sprintf("decision email failed application_id=%s to=%s: %v", app.ID, candidate.Email, err))
		return
	}
	s.logInfo(fmt.Sprintf("decision email sent application_id=%s to=%s", app.ID, candidate.Email))
}

func composeDecisionEmail(j *job.Job, candidate *user.User, status application.Status, message string) (string, string) {
	companyName := "Company"
	if j.Company != nil {
		if j.Company.CompanyName != "" {
			companyName = j.Company.CompanyName
		} else if j.Company.Name != "" {
			companyName = j.Company.Name
		}
	}
	subject := fmt.Sprintf("Update on your application for %s", j.Title)
	if status == application.StatusAccepted {
		subject = fmt.Sprintf("Congratulations — you were selected for %s", j.Title)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(candidate.Name))
	fmt.Fprintf(&b, "<p>Your application for <strong>%s</strong> at <strong>%s</strong> has been <strong>%s</strong>.</p>",
		html.EscapeString(j.Title), html.EscapeString(companyName), html.EscapeString(string(status)))
	if message != "" {
		fmt.Fprintf(&b, "<p><strong>Message from company:</strong><br/>%s</p>", html.EscapeString(message))
	}
	b.WriteString("<p>Thanks — Job Finder</p>")
	return subject, b.String()
}

func (s *ApplicationService) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}

func (s *ApplicationService) logError(msg string) {
	if s.logger != nil {
		s.logger.Error(msg)
	}
}
