// Package discovery triggers the external device-discovery process and reads
// the shared discovery file it produces. The scanning itself lives entirely in
// that process; this package only spawns it and consumes its output file.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
)

// Result summarizes one discovery run for the trigger endpoint.
type Result struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DeviceCount int    `json:"deviceCount"`
}

// Runner spawns the discovery command and reads the snapshot file.
type Runner struct {
	command []string
	dir     string
	file    string
	timeout time.Duration
}

// NewRunner configures a runner. command is the discovery executable and its
// arguments, dir its working directory, file the path of the shared discovery
// file the command writes.
func NewRunner(command []string, dir, file string, timeout time.Duration) (*Runner, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, errors.New("discovery: empty command")
	}
	if file == "" {
		return nil, errors.New("discovery: empty snapshot path")
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Runner{command: command, dir: dir, file: file, timeout: timeout}, nil
}

// Run executes the discovery command to completion, then reads the snapshot
// it wrote. A run that finishes without producing the snapshot file is
// reported as unsuccessful rather than as an error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	cmd.Dir = r.dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("discovery command failed: %w: %s", err, trimOutput(output))
	}

	snapshot, exists, err := r.readSnapshot()
	if err != nil {
		return nil, err
	}
	if !exists {
		return &Result{
			Success: false,
			Message: "discovery completed but no snapshot was written",
		}, nil
	}
	return &Result{
		Success:     true,
		Message:     "discovery completed",
		DeviceCount: len(snapshot.Devices),
	}, nil
}

// Snapshot returns the current contents of the shared discovery file. When
// the file does not exist yet, an empty snapshot is returned.
func (r *Runner) Snapshot(ctx context.Context) (*domain.DiscoverySnapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	snapshot, _, err := r.readSnapshot()
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *Runner) readSnapshot() (*domain.DiscoverySnapshot, bool, error) {
	data, err := os.ReadFile(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.DiscoverySnapshot{Devices: []domain.DiscoveredDevice{}}, false, nil
		}
		return nil, false, fmt.Errorf("read discovery snapshot: %w", err)
	}

	var snapshot domain.DiscoverySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("parse discovery snapshot: %w", err)
	}
	if snapshot.Devices == nil {
		snapshot.Devices = []domain.DiscoveredDevice{}
	}
	return &snapshot, true, nil
}

func trimOutput(output []byte) string {
	const maxLen = 512
	if len(output) > maxLen {
		output = output[:maxLen]
	}
	return string(output)
}
