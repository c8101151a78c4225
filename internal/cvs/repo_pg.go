package cvs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cvmaker-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const cvColumns = `id, user_id, email, file_name, mime_type, size_bytes, job_title, extracted_data, ats_score, ats_result, created_at`

func (r *PGRepo) Create(ctx context.Context, cv CV) error {
	extracted, err := json.Marshal(cv.ExtractedData)
	if err != nil {
		return fmt.Errorf("marshal extracted data: %w", err)
	}
	result, err := json.Marshal(cv.ATSResult)
	if err != nil {
		return fmt.Errorf("marshal ats result: %w", err)
	}
	const query = `
INSERT INTO cvs (` + cvColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.DB.ExecContext(ctx, query,
		cv.ID,
		cv.UserID,
		cv.Email,
		cv.FileName,
		cv.MimeType,
		cv.SizeBytes,
		db.NullableString(cv.JobTitle),
		extracted,
		cv.ATSScore,
		result,
		cv.CreatedAt,
	)
	return err
}

func (r *PGRepo) Latest(ctx context.Context, userID string) (CV, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+cvColumns+` FROM cvs WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)
	cv, err := scanCV(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CV{}, ErrNotFound
	}
	return cv, err
}

func (r *PGRepo) List(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+cvColumns+` FROM cvs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CV{}
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCV(row rowScanner) (CV, error) {
	var (
		cv        CV
		jobTitle  sql.NullString
		extracted []byte
		result    []byte
	)
	if err := row.Scan(
		&cv.ID,
		&cv.UserID,
		&cv.Email,
		&cv.FileName,
		&cv.MimeType,
		&cv.SizeBytes,
		&jobTitle,
		&extracted,
		&cv.ATSScore,
		&result,
		&cv.CreatedAt,
	); err != nil {
		return CV{}, err
	}
	cv.JobTitle = jobTitle.String
	if err := json.Unmarshal(extracted, &cv.ExtractedData); err != nil {
		return CV{}, fmt.Errorf("decode extracted data: %w", err)
	}
	if err := json.Unmarshal(result, &cv.ATSResult); err != nil {
		return CV{}, fmt.Errorf("decode ats result: %w", err)
	}
	return cv, nil
}
