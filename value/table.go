package value

import (
	"github.com/dolthub/swiss"
)

// Table is the hash table backing the VM's global-variable namespace:
// a plain get/set/delete contract over string keys. A Swiss table
// supplies that contract without hand-rolling open addressing.
type Table struct {
	m *swiss.Map[string, Value]
}

// NewTable returns an empty table sized for a modest global count; the
// underlying Swiss table grows on its own past that.
func NewTable() *Table {
	return &Table{m: swiss.NewMap[string, Value](8)}
}

// Get looks up key, reporting whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	return t.m.Get(key)
}

// Set inserts or overwrites key, reporting whether key was newly
// inserted — callers that need to reject redefinitions check this
// return value instead of doing a separate lookup first.
func (t *Table) Set(key string, v Value) bool {
	_, existed := t.m.Get(key)
	t.m.Put(key, v)
	return !existed
}

// Delete removes key, reporting whether it had been present.
func (t *Table) Delete(key string) bool {
	return t.m.Delete(key)
}

// Len reports the number of entries currently stored.
func (t *Table) Len() int {
	return t.m.Count()
}

// InternTable deduplicates string objects by content so that every
// two strings with equal characters share one *ObjString, making
// value equality and hashing on strings a pointer comparison.
type InternTable struct {
	m *swiss.Map[string, *ObjString]
}

// NewInternTable returns an empty intern table.
func NewInternTable() *InternTable {
	return &InternTable{m: swiss.NewMap[string, *ObjString](64)}
}

// Find returns the interned *ObjString for chars, if one exists.
func (it *InternTable) Find(chars string) (*ObjString, bool) {
	return it.m.Get(chars)
}

// Add registers s as the canonical interned object for its content.
// Callers must only call Add after Find has reported a miss.
func (it *InternTable) Add(s *ObjString) {
	it.m.Put(s.Chars, s)
}
