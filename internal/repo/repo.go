// Package repo contains all database access logic for the drive logbook.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping. Every query that
// touches user-owned rows takes the owning user's id as an explicit argument.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/drivelog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Users        UserRepo
	Destinations DestinationRepo
	Days         CalendarDayRepo
	Logs         DrivingLogRepo
	Stats        StatsRepo
}

// NewRepos binds all repositories to db.
func NewRepos(db db) Repos {
	return Repos{
		Users:        NewUserRepo(db),
		Destinations: NewDestinationRepo(db),
		Days:         NewCalendarDayRepo(db),
		Logs:         NewDrivingLogRepo(db),
		Stats:        NewStatsRepo(db),
	}
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Services depend on this interface so unit tests can hand in mock repos.
type Transactor interface {
	InTx(ctx context.Context, fn func(r Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx (as a savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the Postgres Transactor.
type Store struct {
	db beginner
}

// NewStore constructs a Store. In production pass *pgxpool.Pool; in tests a
// pgx.Tx works too, each InTx call then becomes a savepoint.
func NewStore(db beginner) *Store {
	return &Store{db: db}
}

// InTx implements Transactor using pgx.BeginFunc.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// Postgres SQLSTATE codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// conflictMessages holds the client-facing text for constraints that callers
// can trip. Constraint names stay out of error messages.
var conflictMessages = map[string]string{
	"users_username_key":               "username is already taken",
	"calendar_days_user_date_key":      "calendar day already exists",
	"driving_logs_day_id_key":          "day already has a driving log entry",
	"driving_logs_destination_id_fkey": "destination is referenced by driving log entries",
	"driving_logs_day_id_fkey":         "calendar day does not exist",
	"destinations_user_id_fkey":        "user does not exist",
	"calendar_days_user_id_fkey":       "user does not exist",
}

// mapErr translates driver errors into domain sentinels:
// no rows becomes ErrNotFound, unique and foreign-key violations become ErrConflict.
func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, conflictMessage(pgErr.ConstraintName, "record already exists"))
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, conflictMessage(pgErr.ConstraintName, "record is referenced by other data"))
		}
	}
	return err
}

func conflictMessage(constraint, fallback string) string {
	if msg, ok := conflictMessages[constraint]; ok {
		return msg
	}
	return fallback
}
