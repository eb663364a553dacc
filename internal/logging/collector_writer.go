package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// CollectorWriter mirrors log lines to a TCP log collector without ever
// blocking the request path. While the collector is unreachable, writes are
// dropped and reconnects are rate-limited by a cool-down window.
type CollectorWriter struct {
	addr        string
	dialTimeout time.Duration
	cooldown    time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewCollectorWriter(addr string) (*CollectorWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty collector address")
	}
	return &CollectorWriter{
		addr:        addr,
		dialTimeout: 2 * time.Second,
		cooldown:    5 * time.Second,
	}, nil
}

// Write implements io.Writer. Failures are swallowed so callers logging
// through this writer never see collector outages.
func (w *CollectorWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if w.conn == nil {
		now := time.Now()
		if !w.nextRetry.IsZero() && now.Before(w.nextRetry) {
			return len(p), nil
		}
		conn, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
		if err != nil {
			w.nextRetry = now.Add(w.cooldown)
			return len(p), nil
		}
		w.conn = conn
		w.nextRetry = time.Time{}
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := w.conn.Write(line); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(w.cooldown)
	}
	return len(p), nil
}

func (w *CollectorWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
