// Package target validates and tokenizes the scan-target input the wizard
// submits: IPv4 addresses with an optional /0-/32 CIDR suffix, separated by
// commas, newlines, or whitespace.
package target

import (
	"regexp"
	"strings"
)

var (
	separators = regexp.MustCompile(`[\n,\s]+`)
	ipv4OrCIDR = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])\.){3}(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])(?:/(?:[0-9]|[1-2][0-9]|3[0-2]))?$`)
)

// Tokenize splits raw target input on commas, newlines, and whitespace. Stray
// separators never produce empty tokens; order is preserved.
func Tokenize(input string) []string {
	parts := separators.Split(input, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsIPv4OrCIDR reports whether s is a valid dotted-quad IPv4 address, with an
// optional /0-/32 mask. Octets above 255 and masks above 32 are rejected.
func IsIPv4OrCIDR(s string) bool {
	return ipv4OrCIDR.MatchString(s)
}

// Invalid returns the tokens in targets that fail IsIPv4OrCIDR, in input order.
func Invalid(targets []string) []string {
	var bad []string
	for _, t := range targets {
		if !IsIPv4OrCIDR(t) {
			bad = append(bad, t)
		}
	}
	return bad
}
