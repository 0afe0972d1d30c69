package handoff

import (
	"fmt"
)

// Logger is the ambient logging seam used by pool.Executor to report task
// failures. Protocol-only node kinds and the graph introspection helper
// never log; they stay silent and side-effect-free.
type Logger interface {
	Log(string, ...interface{})
	Warn(string, ...interface{})
}

// NoLogging discards all log output.
type NoLogging struct{}

func (NoLogging) Log(string, ...interface{})  {}
func (NoLogging) Warn(string, ...interface{}) {}

// PrintLogger writes to stdout. Log output is gated by a verbosity level
// greater than zero; Warn always prints.
type PrintLogger int

func (l PrintLogger) Log(m string, args ...interface{}) {
	if int(l) > 0 {
		fmt.Println(append([]interface{}{"INFO", m}, args...)...)
	}
}

func (l PrintLogger) Warn(m string, args ...interface{}) {
	fmt.Println(append([]interface{}{"WARN", m}, args...)...)
}
