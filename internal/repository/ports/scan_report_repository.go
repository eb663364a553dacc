package ports

import (
	"context"

	"github.com/vigiliot/vigil-server/internal/domain"
)

type ScanReportRepository interface {
	// Save inserts the report row and its device rows in one transaction and
	// returns the new report id. A failure on any device insert rolls back
	// the whole save.
	Save(ctx context.Context, report *domain.ScanReport, devices []domain.Device) (int64, error)
	// ListByOwner returns the owner's reports ordered by scan timestamp
	// descending.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.ScanReport, error)
	// ListDevices returns a report's devices ordered by device id ascending.
	ListDevices(ctx context.Context, reportID int64) ([]domain.Device, error)
	// Delete removes the report, cascading to its devices, and reports
	// whether a row was affected.
	Delete(ctx context.Context, reportID int64) (bool, error)
}
