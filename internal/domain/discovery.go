package domain

// DiscoveredDevice is one host reported by the external discovery process.
// The field set mirrors the discovery file the script writes.
type DiscoveredDevice struct {
	IP            string   `json:"ip"`
	Hostname      *string  `json:"hostname"`
	MAC           *string  `json:"mac"`
	Vendor        *string  `json:"vendor"`
	Services      []string `json:"services"`
	Iface         *string  `json:"iface"`
	DiscoveredVia []string `json:"discovered_via"`
}

// DiscoverySummary aggregates counts over a discovery snapshot.
type DiscoverySummary struct {
	TotalDevices  int `json:"total_devices"`
	WithHostnames int `json:"with_hostnames"`
	WithMACs      int `json:"with_macs"`
	WithVendor    int `json:"with_vendor"`
}

// DiscoverySnapshot is the full contents of the shared discovery file.
type DiscoverySnapshot struct {
	OS         *string            `json:"os,omitempty"`
	StartedAt  float64            `json:"started_at,omitempty"`
	Interfaces []DiscoveryIface   `json:"interfaces,omitempty"`
	Devices    []DiscoveredDevice `json:"devices"`
	Summary    *DiscoverySummary  `json:"summary,omitempty"`
}

// DiscoveryIface records one local interface the discovery run scanned from.
type DiscoveryIface struct {
	Name    string `json:"name"`
	IP      string `json:"ip"`
	Network string `json:"network"`
}
