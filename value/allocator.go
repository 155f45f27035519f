package value

// Allocator is the single point through which every heap object is
// created. It owns the intern table and the head of an intrusive
// object list — every ObjString and ObjFunction is linked into that
// list at birth, mirroring allocateObject's bookkeeping in a classic
// tree-walk-turned-bytecode runtime. Go's garbage collector, not this
// list, actually reclaims memory; the list exists so the VM can walk
// and report live objects at teardown.
type Allocator struct {
	interns *InternTable
	objects Obj
}

// NewAllocator returns an allocator with an empty intern table.
func NewAllocator() *Allocator {
	return &Allocator{interns: NewInternTable()}
}

func (a *Allocator) track(o Obj) {
	o.setNext(a.objects)
	a.objects = o
}

// InternString returns the canonical *ObjString for chars, allocating
// and linking a new one only on the first sighting of that content.
func (a *Allocator) InternString(chars string) *ObjString {
	if s, ok := a.interns.Find(chars); ok {
		return s
	}
	s := &ObjString{Chars: chars, Hash: fnv1aHash(chars)}
	a.interns.Add(s)
	a.track(s)
	return s
}

// NewFunction allocates a fresh, empty function object with its own
// chunk, linked into the object list like any other heap value.
func (a *Allocator) NewFunction() *ObjFunction {
	f := &ObjFunction{Chunk: NewChunk()}
	a.track(f)
	return f
}

// Objects calls visit once per live heap object, head (most recently
// allocated) to tail.
func (a *Allocator) Objects(visit func(Obj)) {
	for o := a.objects; o != nil; o = o.next() {
		visit(o)
	}
}
