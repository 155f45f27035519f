package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/zimlit/mti/compiler"
	"github.com/zimlit/mti/value"
)

// disasmCmd compiles a source file and prints its bytecode listing
// without running it — useful for inspecting what the compiler
// emitted for a given program.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "compile a file and print its bytecode" }
func (*disasmCmd) Usage() string {
	return `disasm <file.mti>:
  Compile a source file and print its disassembled bytecode to stdout.
`
}

func (*disasmCmd) SetFlags(*flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	alloc := value.NewAllocator()
	fn, errs := compiler.Compile(string(src), alloc)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return subcommands.ExitFailure
	}

	fn.Chunk.Disassemble(func(s string) { fmt.Println(s) }, args[0])
	return subcommands.ExitSuccess
}
