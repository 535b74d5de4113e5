package corelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLogger(t *testing.T) {
	var (
		f = "%s-%s"
		v = []interface{}{"hello", "world"}
		l = New()

		iBuf bytes.Buffer
		wBuf bytes.Buffer
		eBuf bytes.Buffer
	)

	l.I.SetOutput(&iBuf)
	l.W.SetOutput(&wBuf)
	l.E.SetOutput(&eBuf)

	l.Info(v...)
	assert.Contains(t, iBuf.String(), "[INFO]")
	iBuf.Reset()

	l.Infof(f, v...)
	assert.Contains(t, iBuf.String(), "[INFO]")
	assert.Contains(t, iBuf.String(), "-")
	iBuf.Reset()

	l.Warn(v...)
	assert.Contains(t, wBuf.String(), "[WARN]")
	wBuf.Reset()

	l.Warnf(f, v...)
	assert.Contains(t, wBuf.String(), "[WARN]")
	assert.Contains(t, wBuf.String(), "-")
	wBuf.Reset()

	l.Error(v...)
	assert.Contains(t, eBuf.String(), "[ERROR]")
	eBuf.Reset()

	l.Errorf(f, v...)
	assert.Contains(t, eBuf.String(), "[ERROR]")
	assert.Contains(t, eBuf.String(), "-")
	eBuf.Reset()
}

func TestStdLoggerWithCommitPrefixesOutput(t *testing.T) {
	var iBuf bytes.Buffer
	l := New()
	l.I.SetOutput(&iBuf)

	scoped := l.WithCommit("deadbeef", "create_sketch")
	scoped.Info("appended")

	assert.Contains(t, iBuf.String(), "[deadbeef create_sketch]")
	assert.Contains(t, iBuf.String(), "appended")
}

// TestStdLoggerCriticalCapturesCaller verifies captureStacktrace's skip
// count actually lands on the caller of Critical, not somewhere inside
// this package's own logging machinery.
func TestStdLoggerCriticalCapturesCaller(t *testing.T) {
	var eBuf bytes.Buffer
	l := New()
	l.E.SetOutput(&eBuf)

	l.Critical("boom")

	assert.Contains(t, eBuf.String(), "[ERROR]")
	assert.Contains(t, eBuf.String(), "stacktrace")
	assert.Contains(t, eBuf.String(), "corelog.TestStdLoggerCriticalCapturesCaller")
	assert.Contains(t, eBuf.String(), "logger_test.go:73")
}

// TestStdLoggerCriticalfCapturesCaller mirrors
// TestStdLoggerCriticalCapturesCaller for the printf-style variant.
func TestStdLoggerCriticalfCapturesCaller(t *testing.T) {
	var eBuf bytes.Buffer
	l := New()
	l.E.SetOutput(&eBuf)

	l.Criticalf("boom %d", 1)

	assert.Contains(t, eBuf.String(), "[ERROR]")
	assert.Contains(t, eBuf.String(), "stacktrace")
	assert.Contains(t, eBuf.String(), "corelog.TestStdLoggerCriticalfCapturesCaller")
	assert.Contains(t, eBuf.String(), "logger_test.go:88")
}

func TestLoggerSatisfiesInterface(t *testing.T) {
	var _ Logger = New()
}
