// Package corelog is the logging abstraction shared by the oplog, project
// and split packages: a Logger interface so callers can supply their own
// sink, plus a StdLogger default that can tag its output with the commit
// and operation kind responsible for it, so a replay failure's log line
// names the append that caused it without every call site formatting
// that context by hand.
package corelog

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
)

// Logger is the output interface accepted by the oplog, project and split
// packages. A nil Logger means "don't log".
type Logger interface {
	Info(...interface{})
	Infof(string, ...interface{})
	Warn(...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Critical(...interface{})
	Criticalf(string, ...interface{})
}

// StdLogger is the default Logger: three tagged *log.Logger instances
// writing to stderr. A StdLogger returned by WithCommit additionally
// prefixes every line with the commit/operation that scoped it.
type StdLogger struct {
	I *log.Logger
	W *log.Logger
	E *log.Logger

	prefix string
}

// New returns a configured StdLogger with no commit scope.
func New() *StdLogger {
	return &StdLogger{
		I: log.New(os.Stderr, "[INFO] ", log.LstdFlags),
		W: log.New(os.Stderr, "[WARN] ", log.LstdFlags),
		E: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

// WithCommit returns a StdLogger scoped to sha/kind: every message it
// logs is prefixed with "[sha kind]", so a commit that fails to replay
// can be found in the log without the caller threading that context
// through every Infof/Errorf call by hand. sha and kind are formatted
// with fmt.Sprint so callers can pass either oplog's own types or plain
// strings.
func (d *StdLogger) WithCommit(sha, kind interface{}) *StdLogger {
	return &StdLogger{
		I:      d.I,
		W:      d.W,
		E:      d.E,
		prefix: fmt.Sprintf("[%v %v] ", sha, kind),
	}
}

// Info writes to the "info" logger.
func (d *StdLogger) Info(v ...interface{}) { d.I.Println(d.prefixed(v)...) }

// Infof writes to the "info" logger with printf-style formatting.
func (d *StdLogger) Infof(f string, v ...interface{}) { d.I.Printf(d.prefix+f, v...) }

// Warn writes to the "warning" logger.
func (d *StdLogger) Warn(v ...interface{}) { d.W.Println(d.prefixed(v)...) }

// Warnf writes to the "warning" logger with printf-style formatting.
func (d *StdLogger) Warnf(f string, v ...interface{}) { d.W.Printf(d.prefix+f, v...) }

// Error writes to the "error" logger.
func (d *StdLogger) Error(v ...interface{}) { d.E.Println(d.prefixed(v)...) }

// Errorf writes to the "error" logger with printf-style formatting.
func (d *StdLogger) Errorf(f string, v ...interface{}) { d.E.Printf(d.prefix+f, v...) }

// Critical writes to the "error" logger and appends the current stack
// trace. The project package uses this when replay detects an invariant
// violation, which is treated as a bug in the operation log rather than
// a recoverable input error.
func (d *StdLogger) Critical(v ...interface{}) {
	d.E.Println(d.prefixed(v)...)
	d.logStacktraceToErr()
}

// prefixed prepends the commit/kind tag set by WithCommit to v, as its
// own operand so Println's default spacing still separates it from the
// rest of the message. Returns v unchanged when there is no scope.
func (d *StdLogger) prefixed(v []interface{}) []interface{} {
	if d.prefix == "" {
		return v
	}
	return append([]interface{}{strings.TrimSuffix(d.prefix, " ")}, v...)
}

// Criticalf is Critical with printf-style formatting.
func (d *StdLogger) Criticalf(f string, v ...interface{}) {
	d.E.Printf(d.prefix+f, v...)
	d.logStacktraceToErr()
}

func (d *StdLogger) logStacktraceToErr() {
	d.E.Println("stacktrace:\n" + strings.Join(captureStacktrace(4), "\n"))
}

// captureStacktrace returns debug.Stack() with the first skip frames
// removed, so a logged stack trace starts at the caller of Critical or
// Criticalf rather than inside this package's own logging machinery.
// Each frame is two lines (function name, then file:line), plus the
// leading "goroutine ... [running]:" line debug.Stack() always emits.
func captureStacktrace(skip int) []string {
	stack := string(debug.Stack())
	lines := strings.Split(stack, "\n")
	linesToSkip := 2*skip + 1
	if linesToSkip > len(lines) {
		return lines
	}
	return lines[linesToSkip:]
}
