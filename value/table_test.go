package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableSetReportsNovelty(t *testing.T) {
	tbl := NewTable()
	require.True(t, tbl.Set("a", Number(1)))
	require.False(t, tbl.Set("a", Number(2)))

	got, ok := tbl.Get("a")
	require.True(t, ok)
	require.Equal(t, Number(2), got)
}

func TestTableGetMiss(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Get("nope")
	require.False(t, ok)
}

func TestTableDelete(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", Bool(true))
	require.True(t, tbl.Delete("a"))
	require.False(t, tbl.Delete("a"))

	_, ok := tbl.Get("a")
	require.False(t, ok)
}

func TestTableLen(t *testing.T) {
	tbl := NewTable()
	require.Equal(t, 0, tbl.Len())
	tbl.Set("a", Nil)
	tbl.Set("b", Nil)
	require.Equal(t, 2, tbl.Len())
}

func TestInternTableFindAndAdd(t *testing.T) {
	it := NewInternTable()
	_, ok := it.Find("x")
	require.False(t, ok)

	s := &ObjString{Chars: "x", Hash: fnv1aHash("x")}
	it.Add(s)

	got, ok := it.Find("x")
	require.True(t, ok)
	require.Same(t, s, got)
}
