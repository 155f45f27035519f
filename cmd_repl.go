package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/zimlit/mti/compiler"
	"github.com/zimlit/mti/config"
	"github.com/zimlit/mti/scanner"
	"github.com/zimlit/mti/token"
	"github.com/zimlit/mti/value"
	"github.com/zimlit/mti/vm"
)

type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive MTI session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive MTI session. Definitions made with 'let' at the
  top level persist for the rest of the session.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "print each instruction as it executes")
}

func (r *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("💥 bad configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if r.trace {
		cfg.Trace = true
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mti> ",
		HistoryFile:     "/tmp/.mti_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	alloc := value.NewAllocator()
	machine := vm.New(alloc, cfg, readlineWriter{rl})

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt("mti> ")
		} else {
			rl.SetPrompt("...> ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Printf("💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if !inputReady(buf.String()) {
			continue
		}
		source := buf.String()
		buf.Reset()

		fn, errs := compiler.Compile(source, alloc)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Println(e.Error())
			}
			continue
		}

		if _, runErr := machine.Interpret(fn); runErr != nil {
			fmt.Println(runErr.Error())
		}
	}
}

type readlineWriter struct{ rl *readline.Instance }

func (w readlineWriter) Write(p []byte) (int, error) { return w.rl.Stdout().Write(p) }

// inputReady decides whether the buffered lines form a complete unit
// worth compiling yet, mirroring the brace-balance heuristic used for
// multi-line input: unmatched '(' or an open 'do' or 'if' without its
// 'end' means more is coming, as does a trailing token that can only be
// followed by more expression.
func inputReady(source string) bool {
	s := scanner.New(source)

	parenDepth := 0
	doDepth := 0
	var last token.Token
	sawAny := false

	for {
		tok := s.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Error {
			// let the compiler surface the real diagnostic
			return true
		}
		switch tok.Kind {
		case token.LeftParen:
			parenDepth++
		case token.RightParen:
			parenDepth--
		case token.Do, token.If:
			doDepth++
		case token.End:
			doDepth--
		}
		last = tok
		sawAny = true
	}

	if !sawAny {
		return true
	}
	if parenDepth > 0 || doDepth > 0 {
		return false
	}

	switch last.Kind {
	case token.Plus, token.Minus, token.Star, token.Slash,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.And, token.Or, token.Comma,
		token.Let, token.If, token.Else, token.Print, token.Do:
		return false
	}
	return true
}
