package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListAndDelete(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	repo := &PGRepo{DB: conn}

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "job_title", "company_name", "location", "job_description", "requirements", "vacancies", "job_type", "salary", "created_at", "updated_at"}).
		AddRow("job-1", "Engineer", "Acme", nil, nil, nil, 3, "Full-time", "100k", now, now)
	mock.ExpectQuery("SELECT (.+) FROM jobs ORDER BY created_at DESC").WillReturnRows(rows)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].CompanyName != "Acme" || list[0].Location != "" || list[0].Vacancies != 3 {
		t.Fatalf("unexpected list: %+v", list)
	}

	mock.ExpectExec("DELETE FROM jobs WHERE id = \\$1").
		WithArgs("job-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), "job-404"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
