package arena

// Allocator pairs a value arena with a script-instance arena, the same
// split the original keeps between Datum and ScriptInstance: both are
// chunked/refcounted the same way, but script instances are additionally
// addressed by an externally-meaningful counter id (see instance.go) while
// plain values are always arena-assigned. V and S are left as separate
// type parameters because nothing about the allocator depends on them being
// related types.
type Allocator[V any, S any] struct {
	Values    *Arena[V]
	Instances *InstanceAllocator[S]
}

// NewAllocator builds an Allocator with a values arena pre-sized to
// valuesCapacity slots (spec.md's ValueArena default sizing) and an empty
// script-instance arena.
func NewAllocator[V any, S any](valuesCapacity int) *Allocator[V, S] {
	return &Allocator[V, S]{
		Values:    NewWithCapacity[V](valuesCapacity),
		Instances: NewInstanceAllocator(New[S]()),
	}
}

// Reset tears down both arenas for a fresh run (e.g. restarting a movie):
// values are cleared individually in reverse order first, since a value's
// teardown may reference other values and reverse order keeps dependencies
// alive a little longer than their dependents; script instances are then
// cleared individually in forward order, and the instance counter resets
// to 1. Grounded on allocator.rs's ResetableAllocator::reset.
func (a *Allocator[V, S]) Reset() {
	a.Values.SetResetting(true)
	a.Values.ClearIndividuallyReverse()
	a.Values.SetResetting(false)

	a.Instances.Reset()
}
