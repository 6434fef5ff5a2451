// Package testutils provides the assertions and the log capture
// shared by the tests.
package testutils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(exp, got, opts...); diff != "" {
		t.Fatalf("expected\n%v\n got \n%v\n(-exp +got)\n%s", exp, got, diff)
	}
}

// Approx compares floats up to 1e-3.
var Approx = cmpopts.EquateApprox(0, 1e-3)

// AssertApprox is the same as AssertEqual, with a tolerance on floats.
func AssertApprox[T ~float32 | ~float64](t *testing.T, got, exp T) {
	t.Helper()
	if !cmp.Equal(float64(exp), float64(got), Approx) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

// CapturedLogs records the entries of the logger returned by Logger.
type CapturedLogs struct {
	logger *zap.Logger
	logs   *observer.ObservedLogs
}

// CaptureLogs returns a new recorder, accepting every level.
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	return &CapturedLogs{logger: zap.New(core), logs: logs}
}

// Logger returns the logger to pass to the tested code.
func (c *CapturedLogs) Logger() *zap.Logger { return c.logger }

// Messages returns the messages logged with level Warn or above.
func (c *CapturedLogs) Messages() []string {
	var out []string
	for _, entry := range c.logs.FilterLevelExact(zapcore.WarnLevel).All() {
		out = append(out, entry.Message)
	}
	for _, entry := range c.logs.FilterLevelExact(zapcore.ErrorLevel).All() {
		out = append(out, entry.Message)
	}
	return out
}

// CheckEqual asserts that the warning messages are exactly `refs`.
func (c *CapturedLogs) CheckEqual(refs []string, t *testing.T) {
	t.Helper()
	AssertEqual(t, c.Messages(), refs, cmpopts.EquateEmpty())
}

// AssertNoLogs fails the test if a warning has been logged.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if msgs := c.Messages(); len(msgs) != 0 {
		t.Fatalf("unexpected logs: %v", msgs)
	}
}
