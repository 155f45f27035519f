package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFalseyness(t *testing.T) {
	require.True(t, Nil.IsFalsey())
	require.True(t, Bool(false).IsFalsey())
	require.False(t, Bool(true).IsFalsey())
	require.False(t, Number(0).IsFalsey())
	require.False(t, Number(-1).IsFalsey())
}

func TestEqualAcrossKinds(t *testing.T) {
	require.False(t, Equal(Nil, Bool(false)))
	require.False(t, Equal(Number(0), Bool(false)))
	require.True(t, Equal(Nil, Nil))
	require.True(t, Equal(Number(1), Number(1)))
	require.False(t, Equal(Number(1), Number(2)))
}

func TestEqualObjectsByIdentity(t *testing.T) {
	a := NewAllocator()
	s1 := a.InternString("hi")
	s2 := a.InternString("hi")
	require.True(t, Equal(FromObject(s1), FromObject(s2)))

	other := a.InternString("bye")
	require.False(t, Equal(FromObject(s1), FromObject(other)))
}

func TestStringRendering(t *testing.T) {
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "false", Bool(false).String())
	require.Equal(t, "3", Number(3).String())
	require.Equal(t, "3.5", Number(3.5).String())
}

func TestIsStringAndIsFunction(t *testing.T) {
	a := NewAllocator()
	str := FromObject(a.InternString("x"))
	fn := FromObject(a.NewFunction())

	require.True(t, str.IsString())
	require.False(t, str.IsFunction())
	require.True(t, fn.IsFunction())
	require.False(t, fn.IsString())
	require.False(t, Number(1).IsString())
}
