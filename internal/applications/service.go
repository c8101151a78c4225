package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cvmaker-backend/internal/jobs"
	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/telemetry"
	"cvmaker-backend/internal/users"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid application status")
	ErrJobNotFound   = errors.New("job not found")
)

// DuplicateError carries the application that already exists for the user and job.
type DuplicateError struct {
	Existing Application
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("already applied: application %s", e.Existing.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// CVScorer scores a user's latest CV against a job title; 0 when they have none.
type CVScorer interface {
	ScoreLatest(ctx context.Context, userID, jobTitle string) (int, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

type JobLookup interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

type Service struct {
	Repo   Repo
	Scorer CVScorer
	Users  UserLookup
	Jobs   JobLookup
	Now    func() time.Time
}

func NewService(repo Repo, scorer CVScorer, userLookup UserLookup, jobLookup JobLookup) *Service {
	return &Service{
		Repo:   repo,
		Scorer: scorer,
		Users:  userLookup,
		Jobs:   jobLookup,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Apply records an application scored against the user's latest CV.
func (s *Service) Apply(ctx context.Context, userID string, in ApplyInput) (Application, error) {
	if userID == "" || in.JobID == "" {
		return Application{}, ErrInvalidInput
	}
	if s.Jobs != nil {
		if _, err := s.Jobs.Get(ctx, in.JobID); err != nil {
			if errors.Is(err, jobs.ErrNotFound) {
				return Application{}, ErrJobNotFound
			}
			return Application{}, err
		}
	}

	existing, err := s.Repo.FindByUserAndJob(ctx, userID, in.JobID)
	switch {
	case err == nil:
		return Application{}, &DuplicateError{Existing: existing}
	case !errors.Is(err, ErrNotFound):
		return Application{}, err
	}

	score := 0
	if s.Scorer != nil {
		score, err = s.Scorer.ScoreLatest(ctx, userID, in.JobTitle)
		if err != nil {
			return Application{}, fmt.Errorf("score cv: %w", err)
		}
	}

	now := s.Now()
	app := Application{
		ID:                 uuid.NewString(),
		UserID:             userID,
		JobID:              in.JobID,
		JobTitle:           in.JobTitle,
		JobType:            in.JobType,
		Salary:             in.Salary,
		Openings:           in.Openings,
		YearsOfExperience:  in.YearsOfExperience,
		RelevantExperience: in.RelevantExperience,
		CurrentLocation:    in.CurrentLocation,
		ExpectedSalary:     in.ExpectedSalary,
		ATSScore:           score,
		Status:             StatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		if errors.Is(err, ErrDuplicate) {
			if existing, findErr := s.Repo.FindByUserAndJob(ctx, userID, in.JobID); findErr == nil {
				return Application{}, &DuplicateError{Existing: existing}
			}
		}
		return Application{}, err
	}

	metrics.IncApplications()
	telemetry.Info("application.submitted", map[string]any{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"user_id":        userID,
		"ats_score":      score,
	})
	return app, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Listing, error) {
	apps, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withApplicants(ctx, apps)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Ranking lists a job's applications best ATS score first.
func (s *Service) Ranking(ctx context.Context, jobID string) ([]Listing, error) {
	apps, err := s.Repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.withApplicants(ctx, apps)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Application, error) {
	if !status.Valid() {
		return Application{}, ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, id, status, s.Now())
}

// Withdraw deletes an application owned by userID.
func (s *Service) Withdraw(ctx context.Context, id, userID string) error {
	return s.Repo.DeleteOwned(ctx, id, userID)
}

func (s *Service) withApplicants(ctx context.Context, apps []Application) ([]Listing, error) {
	out := make([]Listing, 0, len(apps))
	seen := make(map[string]*Applicant)
	for _, app := range apps {
		applicant, ok := seen[app.UserID]
		if !ok && s.Users != nil {
			user, err := s.Users.GetByID(ctx, app.UserID)
			switch {
			case err == nil:
				applicant = &Applicant{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
			case errors.Is(err, users.ErrNotFound):
			default:
				return nil, err
			}
			seen[app.UserID] = applicant
		}
		out = append(out, Listing{Application: app, Applicant: applicant})
	}
	return out, nil
}
