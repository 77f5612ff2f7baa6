// Package testing provides mock SSH sessions for exercising fetch logic
// without reachable devices.
package testing

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/rileyhilliard/netwatch/pkg/sshutil"
)

// ErrAuthFailed is returned by the mock dialer when no credential matches.
var ErrAuthFailed = errors.New("ssh: unable to authenticate")

// ErrConnRefused simulates a device without an SSH listener.
var ErrConnRefused = errors.New("dial tcp: connection refused")

// CommandResponse is a canned reply for a command pattern.
type CommandResponse struct {
	Output []byte
	Err    error
	// Delay simulates a slow device; Output respects context expiry.
	Delay time.Duration
}

// MockDevice simulates one network device: which credentials it accepts and
// how it answers commands.
type MockDevice struct {
	mu sync.Mutex

	// Username/Password that authenticates. Empty Username accepts anything.
	Username string
	Password string

	// Refuse makes dialing fail before auth.
	Refuse bool

	responses map[string]CommandResponse
	DialCount int
	ExecLog   []string
}

// NewMockDevice creates a device accepting the given credential.
func NewMockDevice(username, password string) *MockDevice {
	return &MockDevice{
		Username:  username,
		Password:  password,
		responses: make(map[string]CommandResponse),
	}
}

// SetResponse registers a canned response for a command. The key is matched
// exactly first, then treated as a regexp.
func (d *MockDevice) SetResponse(pattern string, resp CommandResponse) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[pattern] = resp
}

// SetOutput is shorthand for a successful response.
func (d *MockDevice) SetOutput(pattern, output string) {
	d.SetResponse(pattern, CommandResponse{Output: []byte(output)})
}

// Dialer returns a sshutil.Dialer that connects to this device regardless
// of the address asked for.
func (d *MockDevice) Dialer() sshutil.Dialer {
	return func(ctx context.Context, addr string, creds []sshutil.Credential, _ time.Duration) (sshutil.Session, error) {
		d.mu.Lock()
		d.DialCount++
		refuse := d.Refuse
		d.mu.Unlock()

		if refuse {
			return nil, ErrConnRefused
		}

		for _, attempt := range sshutil.Attempts(creds) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if d.Username == "" || (attempt[0] == d.Username && attempt[1] == d.Password) {
				return &mockSession{device: d, addr: addr + ":22"}, nil
			}
		}
		return nil, ErrAuthFailed
	}
}

// mockSession implements sshutil.Session against a MockDevice.
type mockSession struct {
	device *MockDevice
	addr   string
	closed bool
	mu     sync.Mutex
}

func (s *mockSession) Output(ctx context.Context, cmd string) ([]byte, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errors.New("session closed")
	}

	s.device.mu.Lock()
	s.device.ExecLog = append(s.device.ExecLog, cmd)
	resp, ok := s.device.responses[cmd]
	if !ok {
		for pattern, r := range s.device.responses {
			if matched, _ := regexp.MatchString(pattern, cmd); matched {
				resp, ok = r, true
				break
			}
		}
	}
	s.device.mu.Unlock()

	if !ok {
		// Network gear answers unknown commands with an error marker,
		// not a shell failure.
		return []byte("% Invalid command at '^' marker."), nil
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.Output, resp.Err
}

func (s *mockSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *mockSession) GetAddress() string {
	return s.addr
}
