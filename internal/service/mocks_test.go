package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a function
// field; set only the ones your test needs. Calling an unset field panics,
// which flags unexpected repo calls.

type mockUserRepo struct {
	create        func(ctx context.Context, u domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, u domain.User) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	return m.updateProfile(ctx, u)
}

type mockDestinationRepo struct {
	create     func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getActive  func(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	listActive func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Destination, int64, error)
	update     func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	deactivate func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetActive(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	return m.getActive(ctx, userID, id)
}
func (m *mockDestinationRepo) ListActive(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.listActive(ctx, userID, p)
}
func (m *mockDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationRepo) Deactivate(ctx context.Context, userID, id uuid.UUID) error {
	return m.deactivate(ctx, userID, id)
}

type mockCalendarDayRepo struct {
	listDates    func(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]time.Time, error)
	insertDates  func(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error)
	listWithLogs func(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]domain.CalendarDay, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.CalendarDay, error)
}

func (m *mockCalendarDayRepo) ListDates(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]time.Time, error) {
	return m.listDates(ctx, userID, first, last)
}
func (m *mockCalendarDayRepo) InsertDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error) {
	return m.insertDates(ctx, userID, dates)
}
func (m *mockCalendarDayRepo) ListWithLogs(ctx context.Context, userID uuid.UUID, first, last time.Time) ([]domain.CalendarDay, error) {
	return m.listWithLogs(ctx, userID, first, last)
}
func (m *mockCalendarDayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CalendarDay, error) {
	return m.getByID(ctx, id)
}

type mockDrivingLogRepo struct {
	create      func(ctx context.Context, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.DrivingLogEntry, error)
	update      func(ctx context.Context, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error)
	listByRange func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExportRow, error)
}

func (m *mockDrivingLogRepo) Create(ctx context.Context, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	return m.create(ctx, e)
}
func (m *mockDrivingLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DrivingLogEntry, error) {
	return m.getByID(ctx, id)
}
func (m *mockDrivingLogRepo) Update(ctx context.Context, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	return m.update(ctx, e)
}
func (m *mockDrivingLogRepo) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExportRow, error) {
	return m.listByRange(ctx, userID, from, to)
}

type mockStatsRepo struct {
	totalKm          func(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.Km, error)
	destinationUsage func(ctx context.Context, userID uuid.UUID, from, to time.Time, order repo.UsageOrder) ([]domain.DestinationUsage, error)
	monthTotals      func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MonthTotal, error)
}

func (m *mockStatsRepo) TotalKm(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.Km, error) {
	return m.totalKm(ctx, userID, from, to)
}
func (m *mockStatsRepo) DestinationUsage(ctx context.Context, userID uuid.UUID, from, to time.Time, order repo.UsageOrder) ([]domain.DestinationUsage, error) {
	return m.destinationUsage(ctx, userID, from, to, order)
}
func (m *mockStatsRepo) MonthTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MonthTotal, error) {
	return m.monthTotals(ctx, userID, from, to)
}

// compile-time checks: mocks must satisfy the repo interfaces.
var (
	_ repo.UserRepo        = (*mockUserRepo)(nil)
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
	_ repo.CalendarDayRepo = (*mockCalendarDayRepo)(nil)
	_ repo.DrivingLogRepo  = (*mockDrivingLogRepo)(nil)
	_ repo.StatsRepo       = (*mockStatsRepo)(nil)
)

// fakeTx is a repo.Transactor that hands the same mock repos to every call
// and counts how many transactions were opened.
type fakeTx struct {
	repos repo.Repos
	calls int
}

func (f *fakeTx) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	f.calls++
	return fn(f.repos)
}

var _ repo.Transactor = (*fakeTx)(nil)
