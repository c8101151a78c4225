package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvmaker-backend/internal/shared/telemetry"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Job, error) {
	now := s.Now()
	job := Job{
		ID:             uuid.NewString(),
		JobTitle:       strings.TrimSpace(in.JobTitle),
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Location:       strings.TrimSpace(in.Location),
		JobDescription: strings.TrimSpace(in.JobDescription),
		Requirements:   strings.TrimSpace(in.Requirements),
		Vacancies:      in.Vacancies,
		JobType:        strings.TrimSpace(in.JobType),
		Salary:         strings.TrimSpace(in.Salary),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validate(job); err != nil {
		return Job{}, err
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	telemetry.Info("job.created", map[string]any{"job_id": job.ID})
	return job, nil
}

func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Job, error) {
	job, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	in.apply(&job)
	if err := validate(job); err != nil {
		return Job{}, err
	}
	job.UpdatedAt = s.Now()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("job.deleted", map[string]any{"job_id": id})
	return nil
}

func validate(job Job) error {
	if job.JobTitle == "" || job.JobType == "" || job.Salary == "" || job.Vacancies <= 0 {
		return ErrInvalidInput
	}
	return nil
}
