package applications

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cvmaker-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `id, user_id, job_id, job_title, job_type, salary, openings, years_of_experience, relevant_experience, current_location, expected_salary, ats_score, application_status, applied_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (` + applicationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.JobID,
		app.JobTitle,
		app.JobType,
		app.Salary,
		app.Openings,
		app.YearsOfExperience,
		app.RelevantExperience,
		app.CurrentLocation,
		app.ExpectedSalary,
		app.ATSScore,
		string(app.Status),
		app.AppliedAt,
		app.UpdatedAt,
	)
	if db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) FindByUserAndJob(ctx context.Context, userID, jobID string) (Application, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC, id`)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC, id`, userID)
}

func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY ats_score DESC, applied_at ASC, id`, jobID)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, now time.Time) (Application, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE applications SET application_status = $2, updated_at = $3 WHERE id = $1 RETURNING `+applicationColumns,
		id, string(status), now)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var (
		app    Application
		status string
	)
	if err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.JobID,
		&app.JobTitle,
		&app.JobType,
		&app.Salary,
		&app.Openings,
		&app.YearsOfExperience,
		&app.RelevantExperience,
		&app.CurrentLocation,
		&app.ExpectedSalary,
		&app.ATSScore,
		&status,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return Application{}, err
	}
	app.Status = Status(status)
	return app, nil
}
