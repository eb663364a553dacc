package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vigiliot/vigil-server/internal/domain"
)

type ScanReportRepository struct {
	db *sqlx.DB
}

func NewScanReportRepo(db *sqlx.DB) *ScanReportRepository {
	return &ScanReportRepository{db: db}
}

// Save inserts the report and its devices inside one transaction so a failed
// device insert never leaves a half-saved report behind.
func (r *ScanReportRepository) Save(ctx context.Context, report *domain.ScanReport, devices []domain.Device) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	const insertReport = `
        INSERT INTO scan_reports (title, scanned_at, targets, exclusions, detection_options, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING report_id
    `
	var reportID int64
	if err := tx.QueryRowxContext(ctx, insertReport,
		report.Title, report.ScannedAt, report.Targets,
		report.Exclusions, report.DetectionOptions, report.OwnerID,
	).Scan(&reportID); err != nil {
		return 0, err
	}

	const insertDevice = `
        INSERT INTO devices (associated_report, device_name, ip_address, services, protocol_warnings, notes, remediation_tips)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for _, device := range devices {
		if _, err := tx.ExecContext(ctx, insertDevice,
			reportID, device.Name, device.IPAddress, device.Services,
			device.ProtocolWarnings, device.Notes, device.RemediationTips,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return reportID, nil
}

func (r *ScanReportRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ScanReport, error) {
	const query = `
        SELECT report_id, title, scanned_at, targets, exclusions, detection_options, owner_id
        FROM scan_reports
        WHERE owner_id = $1
        ORDER BY scanned_at DESC
    `
	reports := []domain.ScanReport{}
	if err := r.db.SelectContext(ctx, &reports, query, ownerID); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ScanReportRepository) ListDevices(ctx context.Context, reportID int64) ([]domain.Device, error) {
	const query = `
        SELECT device_id, device_name, ip_address, services, protocol_warnings, notes, remediation_tips, associated_report
        FROM devices
        WHERE associated_report = $1
        ORDER BY device_id ASC
    `
	devices := []domain.Device{}
	if err := r.db.SelectContext(ctx, &devices, query, reportID); err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *ScanReportRepository) Delete(ctx context.Context, reportID int64) (bool, error) {
	const query = `
        DELETE FROM scan_reports WHERE report_id = $1
    `
	result, err := r.db.ExecContext(ctx, query, reportID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
