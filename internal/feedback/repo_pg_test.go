package feedback

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoStatsQueries(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	repo := &PGRepo{DB: conn}
	ctx := context.Background()

	mock.ExpectQuery("SELECT AVG\\(rating\\)").WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))
	avg, err := repo.Average(ctx)
	if err != nil || avg != 0 {
		t.Fatalf("Average on empty table: %v %v", avg, err)
	}

	mock.ExpectQuery("SELECT rating, COUNT\\(\\*\\) FROM feedback GROUP BY rating ORDER BY rating").
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).AddRow(3, 1).AddRow(5, 4))
	dist, err := repo.Distribution(ctx)
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if len(dist) != 2 || dist[1].Rating != 5 || dist[1].Count != 4 {
		t.Fatalf("unexpected distribution: %+v", dist)
	}

	mock.ExpectExec("DELETE FROM feedback WHERE id = \\$1").
		WithArgs("fb-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(ctx, "fb-404"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
