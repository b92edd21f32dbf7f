package director

// KeyTableEntry is a single cross-reference edge: section owner has a child
// section, reached through a chunk of type code.
type KeyTableEntry struct {
	Owner   SectionID
	Child   SectionID
	Code    FOURCC
}

// KeyTable is the sparse directed graph of (owner, child, code) triples
// that lets a member resolve its many dependent chunks. It is modeled as
// indices into one flat slice, per the design notes in SPEC_FULL.md — never
// as pointer-linked nodes — so that ChildrenOf finds an owner's entries
// through one index lookup and insertion order is preserved. ChildrenOf
// returns a fresh copy of those entries.
//
// The table may contain entries whose owner or child section the container
// does not hold; those are dangling and are ignored by ChildrenOf's callers,
// not by KeyTable itself (KeyTable does not know about a container).
type KeyTable struct {
	entries []KeyTableEntry
	byOwner map[SectionID][]int
}

// NewKeyTable builds a KeyTable from a flat list of entries, indexing them
// by owner while preserving the original insertion order within each
// owner's child list.
func NewKeyTable(entries []KeyTableEntry) *KeyTable {
	kt := &KeyTable{
		entries: entries,
		byOwner: make(map[SectionID][]int, len(entries)),
	}
	for i, e := range entries {
		kt.byOwner[e.Owner] = append(kt.byOwner[e.Owner], i)
	}
	return kt
}

// ChildrenOf returns the entries owned by owner, in insertion order. Some
// member types (e.g. bitmaps with auxiliary chunks) depend on this order
// being stable.
func (kt *KeyTable) ChildrenOf(owner SectionID) []KeyTableEntry {
	idxs := kt.byOwner[owner]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]KeyTableEntry, len(idxs))
	for i, idx := range idxs {
		out[i] = kt.entries[idx]
	}
	return out
}

// Len returns the total number of entries in the table.
func (kt *KeyTable) Len() int { return len(kt.entries) }
