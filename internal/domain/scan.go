package domain

import "time"

// ScanReport is a saved record of one scan run. Targets, Exclusions and
// DetectionOptions are stored as the comma-joined strings the wizard submits.
type ScanReport struct {
	ID               int64     `db:"report_id" json:"report_id"`
	Title            string    `db:"title" json:"title"`
	ScannedAt        time.Time `db:"scanned_at" json:"scanned_at"`
	Targets          string    `db:"targets" json:"targets"`
	Exclusions       *string   `db:"exclusions" json:"exclusions"`
	DetectionOptions *string   `db:"detection_options" json:"detection_options"`
	OwnerID          int64     `db:"owner_id" json:"owner_id"`
}

// Device is one discovered host's findings recorded under a scan report.
type Device struct {
	ID               int64   `db:"device_id" json:"device_id"`
	Name             *string `db:"device_name" json:"device_name"`
	IPAddress        *string `db:"ip_address" json:"ip_address"`
	Services         *string `db:"services" json:"services"`
	ProtocolWarnings *string `db:"protocol_warnings" json:"protocol_warnings"`
	Notes            *string `db:"notes" json:"notes"`
	RemediationTips  *string `db:"remediation_tips" json:"remediation_tips"`
	ReportID         int64   `db:"associated_report" json:"associated_report"`
}
