package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
	"github.com/pkordes/drivelog/testutil"
)

// newTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// newTestRepos returns every repo bound to one rolled-back transaction.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return reposOn(newTestTx(t))
}

func reposOn(tx pgx.Tx) repo.Repos {
	return repo.NewRepos(tx)
}

func mustCreateUser(t *testing.T, r repo.Repos) domain.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), domain.User{
		Username: "driver-" + uuid.NewString(),
		Email:    "driver@example.com",
	})
	require.NoError(t, err, "create user")
	return u
}

func mustCreateDestination(t *testing.T, r repo.Repos, userID uuid.UUID, name string, km domain.Km) domain.Destination {
	t.Helper()
	d, err := r.Destinations.Create(context.Background(), domain.Destination{
		UserID: userID,
		Name:   name,
		Km:     km,
	})
	require.NoError(t, err, "create destination")
	return d
}

// mustBootstrapMonth inserts every calendar day of the month for userID and
// returns them keyed by day of month.
func mustBootstrapMonth(t *testing.T, r repo.Repos, userID uuid.UUID, year, month int) map[int]domain.CalendarDay {
	t.Helper()
	ctx := context.Background()

	first, last, err := domain.MonthRange(year, month)
	require.NoError(t, err)
	_, err = r.Days.InsertDates(ctx, userID, domain.MissingDates(first, last, nil))
	require.NoError(t, err)

	days, err := r.Days.ListWithLogs(ctx, userID, first, last)
	require.NoError(t, err)

	out := make(map[int]domain.CalendarDay, len(days))
	for _, d := range days {
		out[d.Date.Day()] = d
	}
	return out
}

func mustLog(t *testing.T, r repo.Repos, day domain.CalendarDay, dest domain.Destination) domain.DrivingLogEntry {
	t.Helper()
	e, err := r.Logs.Create(context.Background(), domain.DrivingLogEntry{
		DayID:         day.ID,
		DestinationID: dest.ID,
	})
	require.NoError(t, err, "create log entry")
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
