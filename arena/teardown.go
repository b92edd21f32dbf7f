package arena

// Closer is implemented by values whose teardown must run while the arena
// is being cleared — e.g. a value holding a Ref into this same arena that
// needs releasing explicitly, since Go has no destructor to run that logic
// implicitly the way the original relies on Rust's Drop. ClearIndividually
// and ClearIndividuallyReverse call Close on any value implementing this
// interface (directly or through a pointer to it), always after the slot itself has already been zeroed, so a
// Close that re-enters the arena (Contains, Get) sees the slot as already
// empty.
type Closer interface{ Close() }

// Clear drops every slot in arbitrary (storage) order and resets the arena
// to empty, without invoking Closer. Use ClearIndividually/
// ClearIndividuallyReverse instead when T's teardown can itself look other
// ids up in this same arena.
func (a *Arena[T]) Clear() {
	a.chunks = nil
	a.freeList = nil
	a.count = 0
	a.nextSlot = 0
}

// ClearIndividuallyReverse empties every slot from the last chunk to the
// first, zeroing each slot (and so clearing its occupied flag) before
// calling Close on the value it held — so a Close that looks up a
// dependency elsewhere in this arena always observes its own slot as
// already empty. Reverse order means a value's dependencies are still live
// while the value itself is torn down.
func (a *Arena[T]) ClearIndividuallyReverse() {
	for chunkIdx := len(a.chunks) - 1; chunkIdx >= 0; chunkIdx-- {
		chunk := a.chunks[chunkIdx]
		for slotIdx := len(chunk) - 1; slotIdx >= 0; slotIdx-- {
			closeSlot(&chunk[slotIdx])
		}
	}
	a.freeList = nil
	a.count = 0
	a.nextSlot = 0
}

// ClearIndividually is ClearIndividuallyReverse's forward-order twin:
// walking first chunk to last instead.
func (a *Arena[T]) ClearIndividually() {
	for chunkIdx := range a.chunks {
		chunk := a.chunks[chunkIdx]
		for slotIdx := range chunk {
			closeSlot(&chunk[slotIdx])
		}
	}
	a.freeList = nil
	a.count = 0
	a.nextSlot = 0
}

func closeSlot[T any](s *entry[T]) {
	if !s.occupied {
		return
	}
	v := s.value
	*s = entry[T]{}
	if c, ok := any(v).(Closer); ok {
		c.Close()
	} else if c, ok := any(&v).(Closer); ok {
		c.Close()
	}
}
