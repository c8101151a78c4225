package interview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, set QuestionSet) error {
	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	const query = `
INSERT INTO interview_questions (discipline, questions, time_limit, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (discipline) DO UPDATE SET
  questions = EXCLUDED.questions,
  time_limit = EXCLUDED.time_limit,
  updated_at = EXCLUDED.updated_at`
	_, err = r.DB.ExecContext(ctx, query, set.Discipline, questions, set.TimeLimit, set.UpdatedAt)
	return err
}

func (r *PGRepo) Get(ctx context.Context, discipline string) (QuestionSet, error) {
	var (
		set       QuestionSet
		questions []byte
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT discipline, questions, time_limit, updated_at FROM interview_questions WHERE discipline = $1`,
		discipline,
	).Scan(&set.Discipline, &questions, &set.TimeLimit, &set.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return QuestionSet{}, ErrNotFound
	}
	if err != nil {
		return QuestionSet{}, err
	}
	if err := json.Unmarshal(questions, &set.Questions); err != nil {
		return QuestionSet{}, fmt.Errorf("decode questions: %w", err)
	}
	return set, nil
}
