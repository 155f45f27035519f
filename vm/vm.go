// Package vm implements MTI's stack-based bytecode interpreter: a
// single dispatch loop over call frames sharing one operand stack.
package vm

import (
	"fmt"
	"io"

	"github.com/zimlit/mti/config"
	"github.com/zimlit/mti/value"
)

// Result reports how Interpret finished, matching the sysexits
// convention the CLI maps to process exit codes.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

type frame struct {
	function *value.ObjFunction
	ip       int
	slots    int // index into vm.stack naming this frame's slot 0
}

// VM executes compiled chunks. Locals live directly in the shared
// operand stack at frame.slots[n] — the single-stack call-frame
// model, not the source's separate locals stack.
type VM struct {
	frames     []frame
	frameCount int

	stack    []value.Value
	stackTop int

	globals *value.Table
	alloc   *value.Allocator

	out     io.Writer
	trace   bool
	lastErr error
}

// New returns a VM ready to interpret. alloc must be the same
// allocator the compiler used, so that interned strings and function
// objects are shared between compile time and runtime.
func New(alloc *value.Allocator, cfg config.Runtime, out io.Writer) *VM {
	return &VM{
		frames:  make([]frame, cfg.FramesMax),
		stack:   make([]value.Value, cfg.StackMax),
		globals: value.NewTable(),
		alloc:   alloc,
		out:     out,
		trace:   cfg.Trace,
	}
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
}

// stackOverflow is panicked by push when the operand stack is full.
// It unwinds to Interpret's recover, which reports it as an ordinary
// RuntimeError instead of letting a slice-index panic escape to the
// caller.
type stackOverflow struct{}

func (vm *VM) push(v value.Value) {
	if vm.stackTop == len(vm.stack) {
		panic(stackOverflow{})
	}
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

// Interpret runs fn (the compiled top-level script function) to
// completion.
func (vm *VM) Interpret(fn *value.ObjFunction) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stackOverflow); ok {
				result, err = vm.fail("Stack overflow.")
				return
			}
			panic(r)
		}
	}()

	vm.resetStack()
	vm.push(value.FromObject(fn))
	if !vm.callFunction(fn, 0) {
		return ResultRuntimeError, vm.lastErr
	}
	return vm.run()
}

func (vm *VM) currentFrame() *frame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) readByte() byte {
	f := vm.currentFrame()
	b := f.function.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort() int {
	f := vm.currentFrame()
	hi, lo := f.function.Chunk.Code[f.ip], f.function.Chunk.Code[f.ip+1]
	f.ip += 2
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	return vm.currentFrame().function.Chunk.Constants[vm.readByte()]
}

func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	trace := make([]string, 0, vm.frameCount)
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := f.function.Chunk.Lines[f.ip-1]
		name := "<script>"
		if f.function.Name != nil {
			name = f.function.Name.Chars + "()"
		}
		trace = append(trace, fmt.Sprintf("[line %d] in %s", line, name))
	}

	vm.resetStack()
	return RuntimeError{Message: msg, Trace: trace}
}

func (vm *VM) callFunction(fn *value.ObjFunction, argCount int) bool {
	if argCount != fn.Arity {
		vm.lastErr = vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
		return false
	}
	if vm.frameCount == len(vm.frames) {
		vm.lastErr = vm.runtimeError("Stack overflow.")
		return false
	}

	vm.frames[vm.frameCount] = frame{
		function: fn,
		ip:       0,
		slots:    vm.stackTop - argCount - 1,
	}
	vm.frameCount++
	return true
}

func (vm *VM) callValue(callee value.Value, argCount int) bool {
	if callee.IsFunction() {
		return vm.callFunction(callee.AsFunction(), argCount)
	}
	vm.lastErr = vm.runtimeError("Can only call functions.")
	return false
}

func (vm *VM) concatenate() {
	b := vm.pop().AsString()
	a := vm.pop().AsString()
	vm.push(value.FromObject(vm.alloc.InternString(a.Chars + b.Chars)))
}

func (vm *VM) run() (Result, error) {
	for {
		if vm.trace {
			vm.traceStep()
		}

		op := value.OpCode(vm.readByte())
		switch op {
		case value.OpConstant:
			vm.push(vm.readConstant())

		case value.OpNil:
			vm.push(value.Nil)
		case value.OpTrue:
			vm.push(value.Bool(true))
		case value.OpFalse:
			vm.push(value.Bool(false))

		case value.OpPop:
			vm.pop()

		case value.OpGetLocal:
			slot := vm.currentFrame().slots + int(vm.readByte())
			vm.push(vm.stack[slot])
		case value.OpSetLocal:
			slot := vm.currentFrame().slots + int(vm.readByte())
			vm.stack[slot] = vm.peek(0)

		case value.OpGetGlobal:
			name := vm.readConstant().AsString()
			v, ok := vm.globals.Get(name.Chars)
			if !ok {
				return vm.fail("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case value.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.globals.Set(name.Chars, vm.pop())
		case value.OpSetGlobal:
			name := vm.readConstant().AsString()
			if _, ok := vm.globals.Get(name.Chars); !ok {
				return vm.fail("Undefined variable '%s'.", name.Chars)
			}
			vm.globals.Set(name.Chars, vm.peek(0))

		case value.OpEq:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case value.OpGreater:
			if r, res, ok := vm.numericBinop(op); !ok {
				return r, res
			}
		case value.OpLess:
			if r, res, ok := vm.numericBinop(op); !ok {
				return r, res
			}

		case value.OpAdd:
			switch {
			case vm.peek(0).IsString() && vm.peek(1).IsString():
				vm.concatenate()
			case vm.peek(0).Kind == value.KindNumber && vm.peek(1).Kind == value.KindNumber:
				b := vm.pop().Number
				a := vm.pop().Number
				vm.push(value.Number(a + b))
			default:
				return vm.fail("Operands must be two numbers or two strings.")
			}
		case value.OpSubtract, value.OpMultiply, value.OpDivide:
			if r, res, ok := vm.numericBinop(op); !ok {
				return r, res
			}

		case value.OpNot:
			vm.push(value.Bool(vm.pop().IsFalsey()))
		case value.OpNegate:
			if vm.peek(0).Kind != value.KindNumber {
				return vm.fail("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().Number))

		case value.OpPrint:
			fmt.Fprintln(vm.out, vm.pop().String())
			vm.push(value.Nil)

		case value.OpJump:
			offset := vm.readShort()
			vm.currentFrame().ip += offset
		case value.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.currentFrame().ip += offset
			}
		case value.OpLoop:
			offset := vm.readShort()
			vm.currentFrame().ip -= offset

		case value.OpCall:
			argCount := int(vm.readByte())
			if !vm.callValue(vm.peek(argCount), argCount) {
				return ResultRuntimeError, vm.lastErr
			}

		case value.OpReturn:
			result := vm.pop()
			returning := vm.currentFrame()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return ResultOK, nil
			}
			vm.stackTop = returning.slots
			vm.push(result)

		default:
			return vm.fail("Unknown opcode %d.", byte(op))
		}
	}
}

// fail wraps runtimeError into the (Result, error) shape run()'s
// callers expect.
func (vm *VM) fail(format string, args ...any) (Result, error) {
	return ResultRuntimeError, vm.runtimeError(format, args...)
}

// numericBinop implements Greater, Less, Subtract, Multiply, Divide:
// every one of them requires two numbers and leaves exactly one
// value behind.
func (vm *VM) numericBinop(op value.OpCode) (Result, error, bool) {
	if vm.peek(0).Kind != value.KindNumber || vm.peek(1).Kind != value.KindNumber {
		r, err := vm.fail("Operands must be numbers.")
		return r, err, false
	}
	b := vm.pop().Number
	a := vm.pop().Number

	switch op {
	case value.OpGreater:
		vm.push(value.Bool(a > b))
	case value.OpLess:
		vm.push(value.Bool(a < b))
	case value.OpSubtract:
		vm.push(value.Number(a - b))
	case value.OpMultiply:
		vm.push(value.Number(a * b))
	case value.OpDivide:
		vm.push(value.Number(a / b))
	}
	return ResultOK, nil, true
}

// traceStep prints the operand stack and the instruction about to run,
// in the style of a classic bytecode VM's execution trace.
func (vm *VM) traceStep() {
	f := vm.currentFrame()
	line := func(s string) { fmt.Fprintln(vm.out, s) }

	stackRepr := "          "
	for i := 0; i < vm.stackTop; i++ {
		stackRepr += fmt.Sprintf("[ %s ]", vm.stack[i])
	}
	line(stackRepr)
	f.function.Chunk.DisassembleOne(line, f.ip)
}
