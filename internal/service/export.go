package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/repo"
)

// ExportService assembles a flat export of a year of driving-log entries.
type ExportService struct {
	tx repo.Transactor
}

// NewExportService constructs an ExportService.
func NewExportService(tx repo.Transactor) *ExportService {
	return &ExportService{tx: tx}
}

// Export returns one row per driving-log entry of the year, ordered by date.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, year int) ([]domain.ExportRow, error) {
	from, to, err := domain.YearRange(year)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var rows []domain.ExportRow
	err = s.tx.InTx(ctx, func(r repo.Repos) error {
		var err error
		rows, err = r.Logs.ListByRange(ctx, userID, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	return rows, nil
}
