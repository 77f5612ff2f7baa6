// Package sshutil wraps golang.org/x/crypto/ssh for short-lived diagnostic
// sessions against network devices. Authentication is password-based: a
// fixed ordered credential list is tried until one logs in. Sessions are
// opened per fetch and always closed.
package sshutil

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/kevinburke/ssh_config"
	"github.com/rileyhilliard/netwatch/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Credential is one username with the passwords to try for it, in order.
type Credential struct {
	Username  string   `yaml:"username" mapstructure:"username"`
	Passwords []string `yaml:"passwords" mapstructure:"passwords"`
}

// Attempts flattens a credential list into ordered (user, password) pairs.
func Attempts(creds []Credential) [][2]string {
	var out [][2]string
	for _, c := range creds {
		for _, pw := range c.Passwords {
			out = append(out, [2]string{c.Username, pw})
		}
	}
	return out
}

// Client wraps an authenticated SSH connection with its dial metadata.
type Client struct {
	*ssh.Client
	Address  string // host:port actually dialed
	Username string // the credential that won
}

// Dial connects to addr trying each credential in order. The timeout covers
// TCP connect plus handshake and auth for a single attempt; a failed
// attempt moves on to the next credential. If every attempt fails the last
// error is returned.
//
// Host keys are not verified: the targets are switches reached over a
// management network, and the tool is read-only. This mirrors the usual
// AutoAddPolicy stance of network tooling.
func Dial(ctx context.Context, addr string, creds []Credential, timeout time.Duration) (*Client, error) {
	attempts := Attempts(creds)
	if len(attempts) == 0 {
		return nil, errors.New(errors.ErrSSH,
			"No credentials configured",
			"Add at least one username/password pair to the credentials list")
	}

	hostPort := withPort(addr)

	var lastErr error
	for _, attempt := range attempts {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		user, pass := attempt[0], attempt[1]
		config := &ssh.ClientConfig{
			User:            user,
			Auth:            []ssh.AuthMethod{ssh.Password(pass)},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // management network, read-only sessions
			Timeout:         timeout,
		}

		client, err := dialOnce(ctx, hostPort, config, timeout)
		if err != nil {
			lastErr = err
			continue
		}

		return &Client{Client: client, Address: hostPort, Username: user}, nil
	}

	return nil, errors.WrapWithCode(lastErr, errors.ErrSSH,
		fmt.Sprintf("All credentials rejected by %s (tried %d)", hostPort, len(attempts)),
		"Check the credentials list in your config")
}

// dialOnce performs one TCP connect + handshake with a hard deadline so a
// device that accepts the connection but stalls the banner cannot hang the
// attempt.
func dialOnce(ctx context.Context, hostPort string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", hostPort)
	if err != nil {
		return nil, err
	}

	// Deadline covers version exchange, key exchange and auth.
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return nil, err
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, config)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Handshake done; let session I/O manage its own timeouts.
	if err := conn.SetDeadline(time.Time{}); err != nil {
		sshConn.Close()
		return nil, err
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// GetAddress returns the host:port address dialed.
func (c *Client) GetAddress() string {
	return c.Address
}

// withPort appends the SSH port when addr carries none. An entry in
// ~/.ssh/config can override the default port per device.
func withPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	port := ssh_config.Get(addr, "Port")
	if port == "" {
		port = "22"
	}
	return net.JoinHostPort(addr, port)
}
