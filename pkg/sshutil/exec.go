package sshutil

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/netwatch/internal/errors"
)

// Output runs a command in a fresh session and returns its stdout.
// The context bounds the whole execution: when it fires the session is
// torn down, which unblocks the remote read. A hung remote command
// therefore costs at most the context deadline.
func (c *Client) Output(ctx context.Context, cmd string) ([]byte, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.Output(cmd)
		done <- result{out: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, errors.WrapWithCode(res.err, errors.ErrFetch,
				fmt.Sprintf("Command failed: %s", cmd),
				"The device may not support this command dialect.")
		}
		return res.out, nil
	case <-ctx.Done():
		// Closing the session aborts the remote read and lets the
		// goroutine finish.
		_ = session.Close()
		return nil, errors.WrapWithCode(ctx.Err(), errors.ErrFetch,
			fmt.Sprintf("Command timed out: %s", cmd),
			"The device accepted the session but did not answer in time.")
	}
}
