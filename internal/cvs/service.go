package cvs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvmaker-backend/internal/ats"
	"cvmaker-backend/internal/extract"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/storage/object"
	"cvmaker-backend/internal/shared/telemetry"
)

var ErrInvalidInput = errors.New("invalid input")

// Service runs the CV pipeline: store, extract text, LLM extraction, ATS scoring, persist.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	LLM   llm.Extractor
	Now   func() time.Time
}

func NewService(store object.ObjectStore, repo Repo, extractor llm.Extractor) *Service {
	if extractor == nil {
		extractor = llm.PlaceholderClient{}
	}
	return &Service{
		Store: store,
		Repo:  repo,
		LLM:   extractor,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// Process runs an uploaded file through the pipeline. The stored upload is
// removed afterwards whatever the outcome.
func (s *Service) Process(ctx context.Context, in UploadInput, body io.Reader) (CV, error) {
	in.FileName = filepath.Base(strings.TrimSpace(in.FileName))
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	if in.UserID == "" || in.FileName == "" || in.FileName == "." || body == nil {
		return CV{}, ErrInvalidInput
	}

	key, size, mimeType, err := s.Store.Save(ctx, in.UserID, in.FileName, body)
	if err != nil {
		return CV{}, fmt.Errorf("store upload: %w", err)
	}
	defer s.cleanup(context.WithoutCancel(ctx), key)

	text, err := extract.Text(ctx, s.Store, key, mimeType, in.FileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnreadable) {
			metrics.IncCVExtractionFailed()
		}
		return CV{}, err
	}

	raw, err := s.extractResume(ctx, text)
	if err != nil {
		return CV{}, err
	}

	normalized, result := ats.Score(raw, in.JobTitle)
	cv := CV{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Email:         in.Email,
		FileName:      in.FileName,
		MimeType:      mimeType,
		SizeBytes:     size,
		JobTitle:      in.JobTitle,
		ExtractedData: normalized,
		ATSScore:      result.Score,
		ATSResult:     result,
		CreatedAt:     s.Now(),
	}
	if err := s.Repo.Create(ctx, cv); err != nil {
		return CV{}, fmt.Errorf("persist cv: %w", err)
	}

	metrics.IncCVUploads()
	metrics.ObserveATSScore(result.Score)
	telemetry.Info("cv.processed", map[string]any{
		"cv_id":     cv.ID,
		"user_id":   cv.UserID,
		"ats_score": result.Score,
		"size":      size,
	})
	return cv, nil
}

func (s *Service) extractResume(ctx context.Context, text string) (map[string]any, error) {
	start := time.Now()
	out, err := s.LLM.ExtractResume(ctx, text)
	metrics.ObserveLLMDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return nil, err
	}
	raw, err := llm.DecodeObject(out)
	if err != nil {
		metrics.IncCVExtractionFailed()
		return nil, err
	}
	return raw, nil
}

func (s *Service) cleanup(ctx context.Context, key string) {
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("cv.cleanup_failed", map[string]any{"key": key, "err": err})
	}
}

// Current returns the user's latest CV.
func (s *Service) Current(ctx context.Context, userID string) (CV, error) {
	if userID == "" {
		return CV{}, ErrInvalidInput
	}
	return s.Repo.Latest(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.List(ctx, userID, limit, offset)
}

// ScoreCurrent re-scores the latest CV against jobTitle without persisting.
func (s *Service) ScoreCurrent(ctx context.Context, userID, jobTitle string) (CV, ats.Result, error) {
	cv, err := s.Current(ctx, userID)
	if err != nil {
		return CV{}, ats.Result{}, err
	}
	result := ats.Calculate(cv.ExtractedData, jobTitle)
	metrics.ObserveATSScore(result.Score)
	return cv, result, nil
}

// ScoreLatest returns the ATS score of the user's latest CV against jobTitle,
// or 0 when the user has no CV.
func (s *Service) ScoreLatest(ctx context.Context, userID, jobTitle string) (int, error) {
	_, result, err := s.ScoreCurrent(ctx, userID, jobTitle)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}

// ScoreRaw normalizes and scores an extraction record supplied by the caller.
func (s *Service) ScoreRaw(data []byte, jobTitle string) (ats.NormalizedResume, ats.Result, error) {
	normalized, err := ats.DecodeResume(data)
	if err != nil {
		return ats.NormalizedResume{}, ats.Result{}, err
	}
	result := ats.Calculate(normalized, jobTitle)
	metrics.ObserveATSScore(result.Score)
	return normalized, result, nil
}
