package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nil, errors.New("not supported") }
func (nopConn) Ping(ctx context.Context) error            { return nil }

var registerTestDriverOnce sync.Once

func withTestDriver(t *testing.T) {
	t.Helper()
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbtest", dsn)
	}
	t.Cleanup(func() { openDB = prev })
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultServerOptions())
	assert.ErrorIs(t, err, ErrNoDatabaseURL)
}

func TestConnectSurfacesOpenError(t *testing.T) {
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) { return nil, driver.ErrBadConn }
	t.Cleanup(func() { openDB = prev })

	_, err := Connect(context.Background(), "postgres://x", DefaultServerOptions())
	assert.ErrorIs(t, err, driver.ErrBadConn)
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	withTestDriver(t)

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultServerOptions())
	db, err := Connect(context.Background(), "ignored", opts)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
	assert.Equal(t, 3, opts.MaxIdleConns)
	assert.Equal(t, 20*time.Minute, opts.ConnMaxLifetime)
	assert.Equal(t, 45*time.Second, opts.ConnMaxIdleTime)
	assert.Equal(t, time.Second, opts.PingTimeout)
}

func TestOptionsFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	opts := OptionsFromEnv(DefaultCLIOptions())
	assert.Equal(t, 1, opts.MaxOpenConns)
	assert.Equal(t, 5*time.Second, opts.PingTimeout)
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	withTestDriver(t)
	db, err := sql.Open("dbtest", "ignored")
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, "sideways")
	assert.ErrorContains(t, err, "unknown migrate command")
	assert.ErrorIs(t, Migrate(context.Background(), nil, "up"), ErrNoDatabaseURL)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationFiles.ReadDir(migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	body, err := migrationFiles.ReadFile(migrationsDir + "/" + entries[0].Name())
	require.NoError(t, err)
	for _, table := range []string{"users", "cvs", "jobs", "applications", "feedback", "interview_questions"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.Nil(t, NullableString(""))
	assert.Equal(t, "x", NullableString("x"))
}
