package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
)

type fakeScanReportRepo struct {
	mu      sync.Mutex
	nextID  int64
	reports map[int64]domain.ScanReport
	devices map[int64][]domain.Device

	saveErr error
}

func newFakeScanReportRepo() *fakeScanReportRepo {
	return &fakeScanReportRepo{
		reports: make(map[int64]domain.ScanReport),
		devices: make(map[int64][]domain.Device),
	}
}

func (f *fakeScanReportRepo) Save(ctx context.Context, report *domain.ScanReport, devices []domain.Device) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.nextID++
	stored := *report
	stored.ID = f.nextID
	f.reports[stored.ID] = stored

	var deviceID int64
	storedDevices := make([]domain.Device, 0, len(devices))
	for _, d := range devices {
		deviceID++
		d.ID = deviceID
		d.ReportID = stored.ID
		storedDevices = append(storedDevices, d)
	}
	f.devices[stored.ID] = storedDevices
	return stored.ID, nil
}

func (f *fakeScanReportRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ScanReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ScanReport
	for _, r := range f.reports {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScannedAt.After(out[j].ScannedAt) })
	return out, nil
}

func (f *fakeScanReportRepo) ListDevices(ctx context.Context, reportID int64) ([]domain.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Device(nil), f.devices[reportID]...), nil
}

func (f *fakeScanReportRepo) Delete(ctx context.Context, reportID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[reportID]; !ok {
		return false, nil
	}
	delete(f.reports, reportID)
	delete(f.devices, reportID)
	return true, nil
}

func validSaveInput() SaveScanInput {
	return SaveScanInput{
		OwnerID:          1,
		Title:            "Home network sweep",
		ScannedAt:        time.Date(2025, 11, 2, 14, 30, 0, 0, time.UTC),
		Targets:          []string{"192.168.1.0/24"},
		Exclusions:       []string{"192.168.1.1"},
		DetectionOptions: "host discovery, service detection",
		Devices: []DeviceInput{
			{
				Name:             "LivingRoom-TV",
				IPAddress:        "192.168.1.180",
				Services:         "SSDP:upnp:rootdevice,mDNS:_ssh._tcp",
				ProtocolWarnings: "Telnet exposed",
				Notes:            "smart TV",
				RemediationTips:  "disable Telnet",
			},
		},
	}
}

func TestSaveScanStoresReportAndDevices(t *testing.T) {
	ctx := context.Background()
	repo := newFakeScanReportRepo()
	svc := NewScanService(repo)

	id, err := svc.SaveScan(ctx, validSaveInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 1 {
		t.Fatalf("expected report id 1, got %d", id)
	}

	report := repo.reports[id]
	if report.Targets != "192.168.1.0/24" {
		t.Fatalf("unexpected serialized targets: %q", report.Targets)
	}
	if report.Exclusions == nil || *report.Exclusions != "192.168.1.1" {
		t.Fatalf("unexpected exclusions: %v", report.Exclusions)
	}

	devices := repo.devices[id]
	if len(devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(devices))
	}
	if devices[0].Name == nil || *devices[0].Name != "LivingRoom-TV" {
		t.Fatalf("unexpected device name: %v", devices[0].Name)
	}
	if devices[0].ReportID != id {
		t.Fatalf("device must reference the new report, got %d", devices[0].ReportID)
	}
}

func TestSaveScanMissingFields(t *testing.T) {
	ctx := context.Background()
	svc := NewScanService(newFakeScanReportRepo())

	cases := map[string]func(*SaveScanInput){
		"owner":     func(in *SaveScanInput) { in.OwnerID = 0 },
		"title":     func(in *SaveScanInput) { in.Title = "  " },
		"timestamp": func(in *SaveScanInput) { in.ScannedAt = time.Time{} },
		"targets":   func(in *SaveScanInput) { in.Targets = nil },
	}
	for name, mutate := range cases {
		input := validSaveInput()
		mutate(&input)
		if _, err := svc.SaveScan(ctx, input); !errors.Is(err, ErrMissingField) {
			t.Errorf("%s: expected ErrMissingField, got %v", name, err)
		}
	}
}

func TestSaveScanRejectsInvalidTargets(t *testing.T) {
	ctx := context.Background()
	svc := NewScanService(newFakeScanReportRepo())

	input := validSaveInput()
	input.Targets = []string{"192.168.1.0/24", "999.1.1.1"}
	if _, err := svc.SaveScan(ctx, input); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}

	input = validSaveInput()
	input.Exclusions = []string{"not-an-ip"}
	if _, err := svc.SaveScan(ctx, input); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for exclusions, got %v", err)
	}
}

func TestSaveScanZeroDevices(t *testing.T) {
	ctx := context.Background()
	repo := newFakeScanReportRepo()
	svc := NewScanService(repo)

	input := validSaveInput()
	input.Devices = nil
	id, err := svc.SaveScan(ctx, input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	devices, err := svc.ListDevices(ctx, id)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("expected empty device list, got %d", len(devices))
	}
}

func TestListScansNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newFakeScanReportRepo()
	svc := NewScanService(repo)

	older := validSaveInput()
	older.Title = "older"
	older.ScannedAt = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	newer := validSaveInput()
	newer.Title = "newer"
	newer.ScannedAt = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	if _, err := svc.SaveScan(ctx, older); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.SaveScan(ctx, newer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	reports, err := svc.ListScans(ctx, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Title != "newer" || reports[1].Title != "older" {
		t.Fatalf("expected newest-first ordering, got %q then %q", reports[0].Title, reports[1].Title)
	}
}

func TestDeleteScan(t *testing.T) {
	ctx := context.Background()
	repo := newFakeScanReportRepo()
	svc := NewScanService(repo)

	id, err := svc.SaveScan(ctx, validSaveInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeleteScan(ctx, id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.devices[id]) != 0 {
		t.Fatal("expected devices to be removed with their report")
	}
	if err := svc.DeleteScan(ctx, id); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
	if err := svc.DeleteScan(ctx, 9999); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound for unknown id, got %v", err)
	}
}
