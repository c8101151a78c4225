package interview

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cvmaker-backend/internal/shared/telemetry"
)

//go:embed seed/questions.yaml
var seedFS embed.FS

const defaultTimeLimit = 180

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// SeedSets returns the embedded question sets.
func SeedSets() ([]QuestionSet, error) {
	raw, err := seedFS.ReadFile("seed/questions.yaml")
	if err != nil {
		return nil, err
	}
	return ParseSets(raw)
}

// ParseSets decodes a YAML list of question sets. A missing timeLimit defaults to 180 seconds.
func ParseSets(raw []byte) ([]QuestionSet, error) {
	var sets []QuestionSet
	if err := yaml.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("parse question sets: %w", err)
	}
	for i := range sets {
		sets[i].Discipline = strings.TrimSpace(sets[i].Discipline)
		if sets[i].Discipline == "" {
			return nil, fmt.Errorf("question set %d: discipline is required", i)
		}
		if len(sets[i].Questions) == 0 {
			return nil, fmt.Errorf("question set %q: no questions", sets[i].Discipline)
		}
		if sets[i].TimeLimit <= 0 {
			sets[i].TimeLimit = defaultTimeLimit
		}
	}
	return sets, nil
}

// Seed upserts every embedded set and reports how many were written.
func (s *Service) Seed(ctx context.Context) (int, error) {
	sets, err := SeedSets()
	if err != nil {
		return 0, err
	}
	for _, set := range sets {
		set.UpdatedAt = s.Now()
		if err := s.Repo.Upsert(ctx, set); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", set.Discipline, err)
		}
	}
	telemetry.Info("interview.seeded", map[string]any{"sets": len(sets)})
	return len(sets), nil
}

func (s *Service) Get(ctx context.Context, discipline string) (QuestionSet, error) {
	discipline = strings.TrimSpace(discipline)
	if discipline == "" {
		return QuestionSet{}, ErrNotFound
	}
	return s.Repo.Get(ctx, discipline)
}
