package jobs

import (
	"context"
	"database/sql"
	"errors"

	"cvmaker-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, job_title, company_name, location, job_description, requirements, vacancies, job_type, salary, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (` + jobColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.JobTitle,
		db.NullableString(job.CompanyName),
		db.NullableString(job.Location),
		db.NullableString(job.JobDescription),
		db.NullableString(job.Requirements),
		job.Vacancies,
		job.JobType,
		job.Salary,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Job, error) {
	job, err := scanJob(r.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
  job_title = $2,
  company_name = $3,
  location = $4,
  job_description = $5,
  requirements = $6,
  vacancies = $7,
  job_type = $8,
  salary = $9,
  updated_at = $10
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.JobTitle,
		db.NullableString(job.CompanyName),
		db.NullableString(job.Location),
		db.NullableString(job.JobDescription),
		db.NullableString(job.Requirements),
		job.Vacancies,
		job.JobType,
		job.Salary,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job                                  Job
		company, location, description, reqs sql.NullString
	)
	if err := row.Scan(
		&job.ID,
		&job.JobTitle,
		&company,
		&location,
		&description,
		&reqs,
		&job.Vacancies,
		&job.JobType,
		&job.Salary,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return Job{}, err
	}
	job.CompanyName = company.String
	job.Location = location.String
	job.JobDescription = description.String
	job.Requirements = reqs.String
	return job, nil
}
