package arena

import "testing"

func TestAllocRemoveRoundTrip(t *testing.T) {
	a := New[string]()
	id := a.Alloc("hello")
	if id == 0 {
		t.Fatal("Alloc returned the reserved void id 0")
	}
	if got := a.Get(id); got == nil || *got != "hello" {
		t.Fatalf("Get(%d) = %v, want hello", id, got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}

	v, ok := a.Remove(id)
	if !ok || v != "hello" {
		t.Fatalf("Remove(%d) = (%q, %v), want (hello, true)", id, v, ok)
	}
	if a.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after remove", a.Len())
	}
}

func TestAllocFreeListReuse(t *testing.T) {
	a := New[int]()
	id1 := a.Alloc(1)
	a.Remove(id1)
	id2 := a.Alloc(2)
	if id2 != id1 {
		t.Errorf("Alloc after Remove = %d, want free-list reuse of %d", id2, id1)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestInsertAtForcesSpecificID(t *testing.T) {
	a := New[int]()
	a.InsertAt(50, 99)
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}
	if got := a.Get(50); got == nil || *got != 99 {
		t.Fatalf("Get(50) = %v, want 99", got)
	}
	// Subsequent Alloc should not collide with the forced id.
	id := a.Alloc(1)
	if id == 50 {
		t.Errorf("Alloc reused the forced id 50")
	}
}

func TestInsertAtOverwriteDoesNotDoubleCount(t *testing.T) {
	a := New[int]()
	a.InsertAt(5, 1)
	a.InsertAt(5, 2)
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (overwrite must not double-count)", a.Len())
	}
	if got := a.Get(5); got == nil || *got != 2 {
		t.Errorf("Get(5) = %v, want 2", got)
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	a := New[int]()
	if a.Get(1) != nil {
		t.Error("Get on an empty arena should return nil")
	}
	if a.Get(0) != nil {
		t.Error("Get(0) (the void id) must always return nil")
	}
}

func TestContains(t *testing.T) {
	a := New[int]()
	id := a.Alloc(7)
	if !a.Contains(id) {
		t.Error("expected Contains to report true for an allocated id")
	}
	a.Remove(id)
	if a.Contains(id) {
		t.Error("expected Contains to report false after Remove")
	}
	if a.Contains(0) {
		t.Error("Contains(0) must always be false")
	}
}

func TestAllocSpansMultipleChunks(t *testing.T) {
	a := New[int]()
	const n = chunkSize + 10
	ids := make([]uint32, n)
	for i := 0; i < n; i++ {
		ids[i] = a.Alloc(i)
	}
	if a.Len() != n {
		t.Fatalf("Len() = %d, want %d", a.Len(), n)
	}
	for i, id := range ids {
		if got := a.Get(id); got == nil || *got != i {
			t.Fatalf("Get(%d) = %v, want %d", id, got, i)
		}
	}
}
