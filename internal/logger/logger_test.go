package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBuffered() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return New(log.New(&buf, "", 0)), &buf
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBuffered()

	l.LogInfo("booking %d created", 1000)
	l.LogErrorf("failed: %v", "boom")
	l.LogWarnf("slow")

	assert.Equal(t, "[Info]: booking 1000 created\n[Error]: failed: boom\n[Warn]: slow\n", buf.String())
}

func TestLogger_Named(t *testing.T) {
	l, buf := newBuffered()

	l.Named("ledger").LogInfo("ready")

	assert.Equal(t, "[Info] ledger: ready\n", buf.String())
}

func TestLogger_DebugGated(t *testing.T) {
	l, buf := newBuffered()

	l.LogDebugf("hidden")
	assert.Empty(t, buf.String())

	l.WithDebug(true).Named("web").LogDebugf("shown %d", 1)
	assert.Equal(t, "[Debug] web: shown 1\n", buf.String())
}
