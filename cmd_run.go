package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/zimlit/mti/compiler"
	"github.com/zimlit/mti/config"
	"github.com/zimlit/mti/value"
	"github.com/zimlit/mti/vm"
)

// exit codes per the sysexits convention: clean run, compile-time
// error, run-time error.
const (
	exitOK          = 0
	exitCompileFail = 65
	exitRuntimeFail = 70
)

type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and execute an MTI source file" }
func (*runCmd) Usage() string {
	return `run <file.mti>:
  Compile and execute an MTI source file.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "print each instruction as it executes")
}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "💥 no source file given")
		return subcommands.ExitUsageError
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read %s: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 bad configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if r.trace {
		cfg.Trace = true
	}

	status := runSource(string(src), cfg, os.Stdout)
	return subcommands.ExitStatus(status)
}

// runSource compiles and interprets one program against a fresh
// allocator/VM, returning the process exit code its outcome maps to.
func runSource(source string, cfg config.Runtime, out *os.File) int {
	alloc := value.NewAllocator()

	fn, errs := compiler.Compile(source, alloc)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return exitCompileFail
	}

	machine := vm.New(alloc, cfg, out)
	result, runErr := machine.Interpret(fn)
	switch result {
	case vm.ResultOK:
		return exitOK
	default:
		if runErr != nil {
			fmt.Fprintln(os.Stderr, runErr.Error())
		}
		return exitRuntimeFail
	}
}
