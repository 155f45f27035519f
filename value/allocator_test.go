package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternStringDeduplicates(t *testing.T) {
	a := NewAllocator()
	s1 := a.InternString("same")
	s2 := a.InternString("same")
	require.Same(t, s1, s2)
}

func TestInternStringDistinctContent(t *testing.T) {
	a := NewAllocator()
	s1 := a.InternString("a")
	s2 := a.InternString("b")
	require.NotSame(t, s1, s2)
}

func TestInternedStringCachesHash(t *testing.T) {
	a := NewAllocator()
	s := a.InternString("hash-me")
	require.Equal(t, fnv1aHash("hash-me"), s.Hash)
}

func TestNewFunctionStartsEmpty(t *testing.T) {
	a := NewAllocator()
	fn := a.NewFunction()
	require.NotNil(t, fn.Chunk)
	require.Empty(t, fn.Chunk.Code)
	require.Equal(t, "<script>", fn.String())
}

func TestObjectsWalksEveryAllocation(t *testing.T) {
	a := NewAllocator()
	a.InternString("one")
	a.InternString("two")
	a.NewFunction()

	var seen []string
	a.Objects(func(o Obj) { seen = append(seen, o.objType()) })

	require.Len(t, seen, 3)
}
