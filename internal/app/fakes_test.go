package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobfinder/internal/common"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/domain/user"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.NewError(common.CodeConflict, "email already exists", nil)
		}
	}
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	stored := u
	r.byID[u.ID] = &stored
	return &u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.UpdatedAt = time.Now().UTC()
	stored := u
	r.byID[u.ID] = &stored
	copied := u
	return &copied, nil
}

type fakeJobRepo struct {
	mu         sync.Mutex
	byID       map[common.UUID]*job.Job
	lastFilter job.Filter
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.CreatedAt = time.Now().UTC()
	stored := j
	r.byID[j.ID] = &stored
	return &j, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *stored
	return &copied, nil
}

// List mirrors the SQL semantics: Query is a case-insensitive title
// substring, Skill is exact case-sensitive membership.
func (r *fakeJobRepo) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	var items []job.Job
	for _, stored := range r.byID {
		if filter.Query != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Skill != "" {
			found := false
			for _, skill := range stored.Skills {
				if skill == filter.Skill {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		items = append(items, *stored)
	}
	return items, nil
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	byID  map[common.UUID]*application.Application
	jobs  *fakeJobRepo
	users *fakeUserRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo, users *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application), jobs: jobs, users: users}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return nil, common.NewError(common.CodeConflict, "already applied", nil)
		}
	}
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	stored := app
	r.byID[app.ID] = &stored
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.byID {
		if stored.JobID == jobID && stored.CandidateID == candidateID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Details, error) {
	return r.list(func(app *application.Application) bool { return app.JobID == jobID })
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Details, error) {
	return r.list(func(app *application.Application) bool { return app.CandidateID == candidateID })
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Details, error) {
	return r.list(func(app *application.Application) bool {
		j, err := r.jobs.GetByID(context.Background(), app.JobID)
		return err == nil && j.CompanyID == companyID
	})
}

func (r *fakeApplicationRepo) UpdateDecision(ctx context.Context, id common.UUID, status application.Status, companyMessage string, decidedAt time.Time) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	stored.Status = status
	stored.CompanyMessage = companyMessage
	stored.DecisionAt = &decidedAt
	copied := *stored
	return &copied, nil
}

func (r *fakeApplicationRepo) list(match func(*application.Application) bool) ([]application.Details, error) {
	r.mu.Lock()
	apps := make([]*application.Application, 0, len(r.byID))
	for _, stored := range r.byID {
		apps = append(apps, stored)
	}
	r.mu.Unlock()

	var items []application.Details
	for _, stored := range apps {
		if !match(stored) {
			continue
		}
		detail := application.Details{Application: *stored}
		if j, err := r.jobs.GetByID(context.Background(), stored.JobID); err == nil {
			detail.Job = j
		}
		if candidate, err := r.users.GetByID(context.Background(), stored.CandidateID); err == nil {
			summary := candidate.Summary()
			detail.Candidate = &summary
		}
		items = append(items, detail)
	}
	return items, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
	ch   chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{ch: make(chan sentMail, 8)}
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	mail := sentMail{to: to, subject: subject, body: body}
	m.sent = append(m.sent, mail)
	m.mu.Unlock()
	if m.ch != nil {
		m.ch <- mail
	}
	return m.err
}

type publishedEvent struct {
	userID common.UUID
	event  any
}

type fakePublisher struct {
	ch chan publishedEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{ch: make(chan publishedEvent, 8)}
}

func (p *fakePublisher) Publish(userID common.UUID, event any) {
	p.ch <- publishedEvent{userID: userID, event: event}
}

type noopLogger struct{}

func (noopLogger) Info(string)  {}
func (noopLogger) Error(string) {}
