// Package value implements MTI's runtime value representation, heap
// objects, bytecode chunks, and the hash table used for globals and
// string interning.
package value

import "fmt"

// Kind tags a Value's active member.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is MTI's tagged-union runtime value: nil, boolean, IEEE-754
// double, or a non-owning reference into the VM's object list.
// Values are always copied by value — only Object is a pointer, and
// pointer identity on Object is what makes string interning work.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Object Obj
}

// Nil is the singleton nil value.
var Nil = Value{Kind: KindNil}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// FromObject constructs a value wrapping a heap object.
func FromObject(o Obj) Value { return Value{Kind: KindObject, Object: o} }

// IsNil reports whether v holds nil.
func (v Value) IsNil() bool { return v.Kind == KindNil }

// IsFalsey implements MTI's truthiness rule: nil and false are
// falsey, every other value (including 0 and the empty string) is
// truthy.
func (v Value) IsFalsey() bool {
	return v.Kind == KindNil || (v.Kind == KindBool && !v.Bool)
}

// AsString type-asserts v as a string object, panicking if it is not
// one. Callers must know v is a string: the VM calls this after an
// IsString check, or on a global-name constant, which the compiler
// always emits as a string.
func (v Value) AsString() *ObjString {
	return v.Object.(*ObjString)
}

// IsString reports whether v holds a string object.
func (v Value) IsString() bool {
	if v.Kind != KindObject {
		return false
	}
	_, ok := v.Object.(*ObjString)
	return ok
}

// AsFunction type-asserts v as a function object.
func (v Value) AsFunction() *ObjFunction {
	return v.Object.(*ObjFunction)
}

// IsFunction reports whether v holds a function object.
func (v Value) IsFunction() bool {
	if v.Kind != KindObject {
		return false
	}
	_, ok := v.Object.(*ObjFunction)
	return ok
}

// Equal implements MTI's value-equality rule: values of different
// kinds are never equal, numbers compare by IEEE-754 equality,
// booleans and nil by content, and objects by pointer identity
// (which is safe precisely because every string is interned).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindObject:
		return a.Object == b.Object
	default:
		return false
	}
}

// String renders v the way MTI's print construct does.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number)
	case KindObject:
		return v.Object.String()
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
