package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLoggerCaptures(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error %s", "msg")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "debug 1", l.Messages[0].Message)
	assert.Equal(t, "error msg", l.Messages[3].Message)
}

func TestBufferLoggerHasLevel(t *testing.T) {
	l := NewBufferLogger()
	l.Warn("careful")

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Clear()

	assert.Empty(t, l.Messages)
}

func TestNoopDiscards(t *testing.T) {
	l := Noop()

	// Should not panic or emit anything
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("through default")
	assert.Len(t, buf.Messages, 1)
}
