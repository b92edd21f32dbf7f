package cast

import (
	"fmt"

	"github.com/xmedia-go/director"
)

// Loader implements director.CastBuilder. BuildCast walks one cast's member
// table and key-table to assemble its members, their per-member child
// chunks, and its script context, exactly mirroring
// original_source/vm-rust/src/director/cast.rs's CastDef::from.
type Loader struct{}

// NewLoader returns a ready-to-use Loader. Loader carries no state between
// casts, so the zero value would do too; NewLoader exists for symmetry with
// the rest of the package's constructors.
func NewLoader() *Loader { return &Loader{} }

// BuildCast implements director.CastBuilder.
func (l *Loader) BuildCast(container *director.ChunkContainer, kt *director.KeyTable, cfg director.CastConfig) (*director.Cast, error) {
	memberIDs, err := readCastTable(container, cfg.CastSection)
	if err != nil {
		return nil, fmt.Errorf("cast %d: %w", cfg.ID, err)
	}

	c := &director.Cast{
		ID:              cfg.ID,
		Name:            cfg.Name,
		Members:         make(map[int32]*director.Member, len(memberIDs)),
		SectionToMember: make(map[director.SectionID]director.MemberRef, len(memberIDs)),
		PaletteIDOffset: cfg.PaletteIDOffset,
	}

	resolveScriptContext(container, kt, cfg.CastSection, c)

	for i, sectionID := range memberIDs {
		if sectionID <= 0 {
			// Sparse slot: no member at this number.
			continue
		}
		memberNumber := int32(i) + cfg.MinMember
		section := director.SectionID(sectionID)
		c.Members[memberNumber] = l.buildMember(container, kt, section, memberNumber, c)
	}

	return c, nil
}

// buildMember reads one member's CASt chunk plus the ordered list of child
// chunks the key-table attaches to it, registering both the member's own
// section and every child section in c.SectionToMember. A failure to read
// or parse the CASt chunk itself still yields a Member (with a zero Kind
// and empty Name) rather than dropping the slot, matching spec.md's "one
// bad member must not sink the cast" rule; the failure is recorded as a
// Diagnostic.
func (l *Loader) buildMember(container *director.ChunkContainer, kt *director.KeyTable, section director.SectionID, number int32, c *director.Cast) *director.Member {
	var kind director.MemberKind
	var name string
	var record []byte

	data, err := container.GetTyped(section, director.FourCCCast)
	if err != nil {
		c.Diagnostics = append(c.Diagnostics, director.Diagnostic{Section: section, Member: number, Err: err})
	} else {
		kind, name = parseMemberChunk(data)
		record = data
	}

	c.SectionToMember[section] = director.MemberRef{Number: number, Name: name}

	entries := kt.ChildrenOf(section)
	children := make([]director.ChildChunk, len(entries))
	for i, e := range entries {
		c.SectionToMember[e.Child] = director.MemberRef{Number: number, Name: name}

		childData, cerr := container.Get(e.Child)
		children[i] = director.ChildChunk{Section: e.Child, Code: e.Code, Data: childData, Err: cerr}
		if cerr != nil {
			c.Diagnostics = append(c.Diagnostics, director.Diagnostic{
				Section: e.Child,
				Member:  number,
				Err:     &director.ChildParseFailedError{Section: e.Child, Err: cerr},
			})
		}
	}

	return &director.Member{
		Kind:     kind,
		Number:   number,
		Name:     name,
		Section:  section,
		Record:   record,
		Children: children,
	}
}

// readCastTable decodes a cast's member table (a "CAS*" chunk): a flat,
// densely packed array of big-endian 32-bit section ids, one slot per
// member number counting up from the cast's MinMember, 0 marking an empty
// slot. Trailing bytes that don't form a whole 4-byte entry are ignored.
func readCastTable(container *director.ChunkContainer, section director.SectionID) ([]int32, error) {
	data, err := container.Get(section)
	if err != nil {
		return nil, err
	}
	n := len(data) / 4
	ids := make([]int32, n)
	for i := 0; i < n; i++ {
		off := i * 4
		ids[i] = int32(uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3]))
	}
	return ids, nil
}
