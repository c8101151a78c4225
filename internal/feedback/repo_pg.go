package feedback

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

const feedbackColumns = `id, user_id, first_name, last_name, email, rating, feedback, submitted_at`

func (r *PGRepo) Create(ctx context.Context, fb Feedback) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fb.ID, fb.UserID, fb.FirstName, fb.LastName, fb.Email, fb.Rating, fb.Feedback, fb.SubmittedAt,
	)
	return err
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Feedback, error) {
	return r.query(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY submitted_at DESC, id`)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	return r.query(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 ORDER BY submitted_at DESC, id`, userID)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&n)
	return n, err
}

func (r *PGRepo) Average(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.DB.QueryRowContext(ctx, `SELECT AVG(rating)::float8 FROM feedback`).Scan(&avg); err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *PGRepo) Distribution(ctx context.Context) ([]RatingCount, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT rating, COUNT(*) FROM feedback GROUP BY rating ORDER BY rating`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RatingCount{}
	for rows.Next() {
		var rc RatingCount
		if err := rows.Scan(&rc.Rating, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.FirstName, &fb.LastName, &fb.Email, &fb.Rating, &fb.Feedback, &fb.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
