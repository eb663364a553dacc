package http

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
	"github.com/vigiliot/vigil-server/internal/target"
)

// Envelope is the generic JSON body shape.
type Envelope map[string]any

func failure(message string) Envelope {
	return Envelope{"success": false, "message": message}
}

// StringList accepts either a JSON array of strings or a single string of
// comma/newline/whitespace-separated tokens, the two shapes the wizard has
// submitted over time.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		out := make([]string, 0, len(asList))
		for _, item := range asList {
			out = append(out, target.Tokenize(item)...)
		}
		*l = out
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return errors.New("expected a string or an array of strings")
	}
	*l = target.Tokenize(asString)
	return nil
}

// RegisterRequest carries the registration credentials.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries the address a reset link should be sent to.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest confirms a password reset with the emailed token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// SaveScanDevice is one device entry in a save-scan submission. Field names
// follow the wizard's camelCase payload.
type SaveScanDevice struct {
	DeviceName       string `json:"deviceName"`
	IPAddress        string `json:"ipAddress"`
	Services         string `json:"services"`
	ProtocolWarnings string `json:"protocolWarnings"`
	Notes            string `json:"notes"`
	RemediationTips  string `json:"remediationTips"`
}

// SaveScanRequest is the full save-scan submission.
type SaveScanRequest struct {
	UserID           int64            `json:"user_id"`
	Title            string           `json:"title"`
	ScannedAt        string           `json:"scanned_at"`
	Targets          StringList       `json:"targets"`
	Exclusions       StringList       `json:"exclusions"`
	DetectionOptions string           `json:"detection_options"`
	Devices          []SaveScanDevice `json:"devices"`
}

// scannedAtLayouts are the timestamp shapes the wizard has submitted.
var scannedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseScannedAt(value string) (time.Time, error) {
	for _, layout := range scannedAtLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.New("unrecognized scanned_at timestamp")
}

// ReportResponse mirrors the columns the report listing has always returned.
type ReportResponse struct {
	ReportID         int64   `json:"report_id"`
	Title            string  `json:"title"`
	ScannedAt        string  `json:"scanned_at"`
	Targets          string  `json:"targets"`
	Exclusions       *string `json:"exclusions"`
	DetectionOptions *string `json:"detection_options"`
}

func buildReportResponse(report domain.ScanReport) ReportResponse {
	return ReportResponse{
		ReportID:         report.ID,
		Title:            report.Title,
		ScannedAt:        report.ScannedAt.Format(time.RFC3339),
		Targets:          report.Targets,
		Exclusions:       report.Exclusions,
		DetectionOptions: report.DetectionOptions,
	}
}

// DeviceResponse mirrors the device listing columns.
type DeviceResponse struct {
	DeviceID         int64   `json:"device_id"`
	DeviceName       *string `json:"device_name"`
	IPAddress        *string `json:"ip_address"`
	Services         *string `json:"services"`
	ProtocolWarnings *string `json:"protocol_warnings"`
	Notes            *string `json:"notes"`
	RemediationTips  *string `json:"remediation_tips"`
}

func buildDeviceResponse(device domain.Device) DeviceResponse {
	return DeviceResponse{
		DeviceID:         device.ID,
		DeviceName:       device.Name,
		IPAddress:        device.IPAddress,
		Services:         device.Services,
		ProtocolWarnings: device.ProtocolWarnings,
		Notes:            device.Notes,
		RemediationTips:  device.RemediationTips,
	}
}
