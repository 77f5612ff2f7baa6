package sshutil

import (
	"context"
	"time"
)

// Session is an authenticated connection that can run commands.
// Both the real Client and mock implementations satisfy this interface,
// which lets fetch logic be tested without a reachable device.
type Session interface {
	// Output runs a command and returns its stdout. The context bounds
	// the execution time.
	Output(ctx context.Context, cmd string) ([]byte, error)

	// Close closes the connection.
	Close() error

	// GetAddress returns the host:port address dialed.
	GetAddress() string
}

// Dialer opens an authenticated session to a device, trying credentials in
// order. The default is Dial; tests substitute a mock.
type Dialer func(ctx context.Context, addr string, creds []Credential, timeout time.Duration) (Session, error)

// DefaultDialer adapts Dial to the Dialer signature.
func DefaultDialer(ctx context.Context, addr string, creds []Credential, timeout time.Duration) (Session, error) {
	return Dial(ctx, addr, creds, timeout)
}
