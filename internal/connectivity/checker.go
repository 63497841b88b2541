// Package connectivity reports whether the backend's upstream network is
// reachable. Use cases consult it once before starting work.
package connectivity

import (
	"context"
	"net"
	"time"
)

// Checker reports network reachability.
type Checker interface {
	IsConnected(ctx context.Context) bool
}

// DialChecker probes a TCP address with a short timeout.
type DialChecker struct {
	Address string
	Timeout time.Duration
}

// NewDialChecker builds a checker probing the given host:port.
func NewDialChecker(address string, timeout time.Duration) *DialChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DialChecker{Address: address, Timeout: timeout}
}

func (c *DialChecker) IsConnected(ctx context.Context) bool {
	d := net.Dialer{Timeout: c.Timeout}
	conn, err := d.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Always is a checker with a fixed answer, used in tests and local setups.
type Always bool

func (a Always) IsConnected(context.Context) bool { return bool(a) }
