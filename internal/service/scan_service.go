package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
	"github.com/vigiliot/vigil-server/internal/repository/ports"
	"github.com/vigiliot/vigil-server/internal/target"
)

// SaveScanInput is the validated payload for persisting one scan run.
type SaveScanInput struct {
	OwnerID          int64
	Title            string
	ScannedAt        time.Time
	Targets          []string
	Exclusions       []string
	DetectionOptions string
	Devices          []DeviceInput
}

// DeviceInput carries one discovered host's findings from the wizard.
type DeviceInput struct {
	Name             string
	IPAddress        string
	Services         string
	ProtocolWarnings string
	Notes            string
	RemediationTips  string
}

// ScanService persists and retrieves scan reports and their devices.
type ScanService struct {
	reports ports.ScanReportRepository
}

func NewScanService(reports ports.ScanReportRepository) *ScanService {
	return &ScanService{reports: reports}
}

// SaveScan validates the input and stores the report with its devices in one
// transactional save. It returns the new report id.
func (s *ScanService) SaveScan(ctx context.Context, input SaveScanInput) (int64, error) {
	if input.OwnerID <= 0 || strings.TrimSpace(input.Title) == "" ||
		input.ScannedAt.IsZero() || len(input.Targets) == 0 {
		return 0, ErrMissingField
	}
	if bad := target.Invalid(input.Targets); len(bad) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTarget, strings.Join(bad, ", "))
	}
	if bad := target.Invalid(input.Exclusions); len(bad) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTarget, strings.Join(bad, ", "))
	}

	report := &domain.ScanReport{
		Title:            strings.TrimSpace(input.Title),
		ScannedAt:        input.ScannedAt,
		Targets:          strings.Join(input.Targets, ","),
		Exclusions:       optionalText(strings.Join(input.Exclusions, ",")),
		DetectionOptions: optionalText(input.DetectionOptions),
		OwnerID:          input.OwnerID,
	}

	devices := make([]domain.Device, 0, len(input.Devices))
	for _, d := range input.Devices {
		devices = append(devices, domain.Device{
			Name:             optionalText(d.Name),
			IPAddress:        optionalText(d.IPAddress),
			Services:         optionalText(d.Services),
			ProtocolWarnings: optionalText(d.ProtocolWarnings),
			Notes:            optionalText(d.Notes),
			RemediationTips:  optionalText(d.RemediationTips),
		})
	}

	return s.reports.Save(ctx, report, devices)
}

// ListScans returns the owner's reports, newest scan first.
func (s *ScanService) ListScans(ctx context.Context, ownerID int64) ([]domain.ScanReport, error) {
	if ownerID <= 0 {
		return nil, ErrMissingField
	}
	return s.reports.ListByOwner(ctx, ownerID)
}

// ListDevices returns a report's devices ordered by device id.
func (s *ScanService) ListDevices(ctx context.Context, reportID int64) ([]domain.Device, error) {
	if reportID <= 0 {
		return nil, ErrMissingField
	}
	return s.reports.ListDevices(ctx, reportID)
}

// DeleteScan removes a report and, by cascade, its devices.
func (s *ScanService) DeleteScan(ctx context.Context, reportID int64) error {
	if reportID <= 0 {
		return ErrMissingField
	}
	deleted, err := s.reports.Delete(ctx, reportID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReportNotFound
	}
	return nil
}

func optionalText(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
