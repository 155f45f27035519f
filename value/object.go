package value

// Obj is the interface every heap object satisfies. Heap objects are
// linked into the allocator's intrusive object list at allocation and
// reclaimed by Go's garbage collector; Obj itself only needs to support
// identity comparison (the zero value of a Go interface embedding a
// pointer already compares by pointer identity) and printing.
type Obj interface {
	String() string
	objType() string
	setNext(Obj)
	next() Obj
}

// objHeader is embedded by every object variant. It carries the
// forward link used to thread every heap object into one allocation
// list; the "kind tag" itself is the Go dynamic type of the Obj
// interface value, so no separate tag field is needed.
type objHeader struct {
	link Obj
}

func (h *objHeader) setNext(o Obj) { h.link = o }
func (h *objHeader) next() Obj     { return h.link }

// ObjString is an immutable, interned byte sequence. Equality between
// two ObjStrings is always pointer identity: the intern table
// guarantees no two *ObjString with equal content ever coexist.
type ObjString struct {
	objHeader
	Chars string
	Hash  uint32
}

func (s *ObjString) String() string  { return s.Chars }
func (s *ObjString) objType() string { return "string" }

// fnv1aHash computes the 32-bit FNV-1a hash cached on every interned
// string. The tables in table.go key by string content and do not
// read this cached hash.
func fnv1aHash(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// ObjFunction is a callable MTI function: a fixed arity, an owned
// Chunk of bytecode, and an optional name (nil for the anonymous
// top-level script function the compiler always produces).
type ObjFunction struct {
	objHeader
	Arity int
	Chunk *Chunk
	Name  *ObjString
}

func (f *ObjFunction) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Chars + ">"
}
func (f *ObjFunction) objType() string { return "function" }
