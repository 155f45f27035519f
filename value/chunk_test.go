package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteTracksParallelLines(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpTrue, 2)
	require.Equal(t, len(c.Code), len(c.Lines))
	require.Equal(t, []int{1, 2}, c.Lines)
}

func TestAddConstantReturnsIndex(t *testing.T) {
	c := NewChunk()
	i0 := c.AddConstant(Number(1))
	i1 := c.AddConstant(Number(2))
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, Number(2), c.Constants[i1])
}

func TestOpCodeStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "OP_ADD", OpAdd.String())
	require.Contains(t, OpCode(250).String(), "OP_UNKNOWN")
}

func TestDisassembleDoesNotPanicOnEachInstructionFormat(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpConstant, 1)
	c.Write(byte(c.AddConstant(Number(1))), 1)
	c.WriteOp(OpGetLocal, 1)
	c.Write(0, 1)
	c.WriteOp(OpJump, 1)
	c.Write(0, 1)
	c.Write(2, 1)
	c.WriteOp(OpReturn, 1)

	var lines []string
	c.Disassemble(func(s string) { lines = append(lines, s) }, "test")
	require.NotEmpty(t, lines)
	require.Equal(t, "== test ==", lines[0])
}
