package arena

import "testing"

func TestAllocatorResetTearsDownBothArenas(t *testing.T) {
	a := NewAllocator[string, int](16)

	valueID := a.Values.Alloc("hello")
	instID := a.Instances.NextFreeID()
	a.Instances.Alloc(instID, 42)

	a.Reset()

	if a.Values.Len() != 0 {
		t.Errorf("Values.Len() = %d, want 0 after Reset", a.Values.Len())
	}
	if a.Values.Contains(valueID) {
		t.Error("expected values arena cleared after Reset")
	}
	if a.Instances.arena.Len() != 0 {
		t.Errorf("Instances arena Len() = %d, want 0 after Reset", a.Instances.arena.Len())
	}
	if got := a.Instances.NextFreeID(); got != 1 {
		t.Errorf("NextFreeID after Reset = %d, want 1", got)
	}
}
