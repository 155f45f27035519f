package vm

import "fmt"

// RuntimeError is raised for every failure the dispatch loop detects
// once bytecode is actually running: type mismatches, undefined
// variables, bad calls, and stack overflow. It carries the call stack
// at the moment of failure so the CLI can print a trace.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e RuntimeError) Error() string {
	msg := fmt.Sprintf("💥 RuntimeError: %s", e.Message)
	for _, line := range e.Trace {
		msg += "\n  " + line
	}
	return msg
}
