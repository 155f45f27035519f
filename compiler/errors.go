package compiler

import "fmt"

// CompileError is a single diagnostic produced while compiling.
// Collected rather than returned immediately: compilation keeps going
// in panic-mode recovery so a source file can report more than one
// mistake per run.
type CompileError struct {
	Line    int
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("💥 CompileError: [line %d] %s", e.Line, e.Message)
}

// unwindStatement is panicked to jump out of whatever nested parse
// call hit a missing-prefix-rule dead end, back to statement(), which
// recovers it and enters synchronize. The diagnostic itself is always
// recorded via errorAt before the panic, so the recover site has
// nothing left to report.
type unwindStatement struct{}
