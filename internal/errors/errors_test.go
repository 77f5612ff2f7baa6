package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrProbe, "Probe failed", "Check the target is on the network")

	if err.Code != ErrProbe {
		t.Errorf("Code = %q, want %q", err.Code, ErrProbe)
	}
	if err.Message != "Probe failed" {
		t.Errorf("Message = %q, want %q", err.Message, "Probe failed")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorFormat(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'netwatch init' first")
	msg := err.Error()

	if !strings.Contains(msg, "✗ Config file not found") {
		t.Errorf("Error() missing message line: %q", msg)
	}
	if !strings.Contains(msg, "Run 'netwatch init' first") {
		t.Errorf("Error() missing suggestion: %q", msg)
	}
}

func TestErrorFormatWithCause(t *testing.T) {
	cause := stderrors.New("dial tcp: i/o timeout")
	err := WrapWithCode(cause, ErrSSH, "Session failed", "Check credentials")
	msg := err.Error()

	if !strings.Contains(msg, "dial tcp: i/o timeout") {
		t.Errorf("Error() missing cause: %q", msg)
	}
}

func TestWrapDefaultsToSSH(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, "something broke")

	if err.Code != ErrSSH {
		t.Errorf("Code = %q, want %q", err.Code, ErrSSH)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := WrapWithCode(cause, ErrFetch, "Fetch failed", "")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrResolve, "Lookup failed", "")

	if !IsCode(err, ErrResolve) {
		t.Error("IsCode(err, ErrResolve) = false, want true")
	}
	if IsCode(err, ErrProbe) {
		t.Error("IsCode(err, ErrProbe) = true, want false")
	}
	if IsCode(nil, ErrResolve) {
		t.Error("IsCode(nil, ...) = true, want false")
	}
	if IsCode(stderrors.New("plain"), ErrResolve) {
		t.Error("IsCode(plain error, ...) = true, want false")
	}
}
