package arena

import "github.com/xmedia-go/director"

// Ref is a handle to one arena slot with intrusive, deferred reference
// counting: constructing a Ref increments the slot's refcount, and
// Release decrements it, removing the slot once it reaches zero.
// Grounded on allocator.rs's DatumRef/ScriptInstanceRef carrying
// (id, *mut refcount) — Go has no raw-pointer equivalent, so Ref instead
// carries (id, *Arena[T]) and looks the slot up by id on every access; the
// arena's chunks never move once allocated, so this costs one extra
// indirection, not a correctness difference.
type Ref[T any] struct {
	id    uint32
	arena *Arena[T]
}

// VoidRef returns the zero Ref, representing "no value" (id 0). Releasing
// or dereferencing a VoidRef is always a safe no-op.
func VoidRef[T any]() Ref[T] { return Ref[T]{} }

// IsVoid reports whether r names no value.
func (r Ref[T]) IsVoid() bool { return r.id == 0 }

// NewRef constructs a Ref to id, incrementing its refcount (unless the slot
// is immortal, which never changes). id must already be occupied; NewRef
// panics if it is not, mirroring the original's .unwrap() on the
// just-allocated entry.
func (a *Arena[T]) NewRef(id uint32) Ref[T] {
	if id == 0 {
		return Ref[T]{}
	}
	s := a.slot(id - 1)
	if !s.occupied {
		panic("arena: NewRef of an unoccupied slot")
	}
	if s.refcount != immortalRefcount {
		s.refcount++
	}
	return Ref[T]{id: id, arena: a}
}

// MakeImmortal marks id's slot as permanently retained: Release on any Ref
// to it becomes a no-op and the slot is never freed by refcount alone.
func (a *Arena[T]) MakeImmortal(id uint32) {
	if id == 0 {
		return
	}
	s := a.slot(id - 1)
	if s.occupied {
		s.refcount = immortalRefcount
	}
}

// Value returns a pointer to the referenced value, or nil for a void Ref
// or one whose slot has already been freed.
func (r Ref[T]) Value() *T {
	if r.id == 0 || r.arena == nil {
		return nil
	}
	return r.arena.Get(r.id)
}

// Release decrements the slot's refcount. At zero it removes the slot and
// invokes onZero (see Arena.OnZero), mirroring on_ref_dropped -> remove.
// While the arena is resetting (see SetResetting and Allocator.Reset), Release is a
// no-op: teardown drives removal itself via ClearIndividually(Reverse),
// and a stray Release firing mid-teardown must not double-free a slot.
func (r Ref[T]) Release() {
	if r.id == 0 || r.arena == nil {
		return
	}
	r.arena.release(r.id)
}

func (a *Arena[T]) release(id uint32) {
	if a.resetting {
		return
	}
	idx := id - 1
	chunkIdx := int(idx) / chunkSize
	if chunkIdx >= len(a.chunks) {
		return
	}
	s := a.slot(idx)
	if !s.occupied || s.refcount == immortalRefcount {
		return
	}
	if s.refcount == 0 {
		// Underflow: a drop against an already-zero refcount. Never
		// surfaced to callers (director.ErrRefcountUnderflow exists for
		// diagnostics/tests, not as a panic path); treated as a no-op.
		_ = director.ErrRefcountUnderflow
		return
	}
	s.refcount--
	if s.refcount == 0 {
		a.Remove(id)
		if a.onZero != nil {
			a.onZero(id)
		}
	}
}

// OnZero registers a callback invoked when a slot's refcount reaches zero,
// after the slot has already been removed. At most one callback is kept;
// registering again replaces it.
func (a *Arena[T]) OnZero(fn func(id uint32)) {
	a.onZero = fn
}

// SetResetting toggles the "allocator is resetting" flag: while true,
// Release on any outstanding Ref is a no-op rather than mutating a slot
// ClearIndividually(Reverse) may already be walking.
func (a *Arena[T]) SetResetting(resetting bool) {
	a.resetting = resetting
}
