package cast

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xmedia-go/director"
)

// buildMovieFixture assembles a minimal single-cast container: a CAS* member table
// with two slots, a bitmap member with one valid child chunk and one
// missing child, and a script member with no children.
func buildMovieFixture(t *testing.T) (*director.ChunkContainer, *director.KeyTable, director.CastConfig) {
	t.Helper()

	const (
		castTableSection director.SectionID = 1
		member1Section    director.SectionID = 10
		member1ChildOK    director.SectionID = 11
		member1ChildBad   director.SectionID = 12 // referenced by the key-table but absent from the container
		member2Section    director.SectionID = 20
	)

	castTable := append(i32be(int32(member1Section)), i32be(int32(member2Section))...)
	member1 := buildCASt(1, "Stage BG", nil)
	member1Child := []byte{1, 2, 3, 4}
	member2 := buildCASt(11, "DoIt", nil)

	var data []byte
	chunks := []director.Chunk{}

	add := func(id director.SectionID, fourcc director.FOURCC, payload []byte) {
		start := int64(len(data))
		data = append(data, payload...)
		chunks = append(chunks, director.Chunk{ID: fourcc, Section: id, Start: start, End: int64(len(data))})
	}

	add(castTableSection, "CAS*", castTable)
	add(member1Section, director.FourCCCast, member1)
	add(member1ChildOK, "BITD", member1Child)
	add(member2Section, director.FourCCCast, member2)

	container := director.NewChunkContainer(data, chunks)

	kt := director.NewKeyTable([]director.KeyTableEntry{
		{Owner: member1Section, Child: member1ChildOK, Code: "BITD"},
		{Owner: member1Section, Child: member1ChildBad, Code: "CLUT"},
	})

	cfg := director.CastConfig{
		ID:              1,
		Name:            "Internal",
		MinMember:       1,
		CastSection:     castTableSection,
		PaletteIDOffset: 3,
	}
	return container, kt, cfg
}

func TestBuildCastAssemblesMembers(t *testing.T) {
	container, kt, cfg := buildMovieFixture(t)
	l := NewLoader()

	c, err := l.BuildCast(container, kt, cfg)
	if err != nil {
		t.Fatalf("BuildCast: %v", err)
	}

	if len(c.Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(c.Members))
	}

	m1, ok := c.Members[1]
	if !ok {
		t.Fatal("expected member 1")
	}
	if m1.Kind != director.MemberBitmap || m1.Name != "Stage BG" {
		t.Errorf("member 1 = %+v", m1)
	}
	if len(m1.Children) != 2 {
		t.Fatalf("len(member1.Children) = %d, want 2 (one ok, one failed)", len(m1.Children))
	}

	var sawOK, sawFailed bool
	for _, ch := range m1.Children {
		if ch.Err == nil {
			sawOK = true
			if string(ch.Data) != "\x01\x02\x03\x04" {
				t.Errorf("ok child data mismatch: %v", ch.Data)
			}
		} else {
			sawFailed = true
			if ch.Data != nil {
				t.Errorf("failed child must carry nil data, got %v", ch.Data)
			}
		}
	}
	if !sawOK || !sawFailed {
		t.Error("expected one ok and one failed child, preserving both as ordered entries")
	}

	m2, ok := c.Members[2]
	if !ok {
		t.Fatal("expected member 2")
	}
	if m2.Kind != director.MemberScript || m2.Name != "DoIt" {
		t.Errorf("member 2 = %+v", m2)
	}

	if c.PaletteIDOffset != 3 {
		t.Errorf("PaletteIDOffset = %d, want 3", c.PaletteIDOffset)
	}
}

func TestBuildCastSectionToMemberCoversChildren(t *testing.T) {
	container, kt, cfg := buildMovieFixture(t)
	c, err := NewLoader().BuildCast(container, kt, cfg)
	if err != nil {
		t.Fatalf("BuildCast: %v", err)
	}

	want := map[director.SectionID]director.MemberRef{
		10: {Number: 1, Name: "Stage BG"}, // member1's own CASt section
		11: {Number: 1, Name: "Stage BG"}, // member1's ok child
		12: {Number: 1, Name: "Stage BG"}, // member1's failed child — still mapped back
		20: {Number: 2, Name: "DoIt"},     // member2's own CASt section
	}
	if diff := cmp.Diff(want, c.SectionToMember); diff != "" {
		t.Errorf("SectionToMember mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCastSkipsSparseSlots(t *testing.T) {
	castTable := append(i32be(0), i32be(int32(director.SectionID(99)))...)
	member := buildCASt(1, "Only", nil)

	container := director.NewChunkContainer(append(castTable, member...), []director.Chunk{
		{ID: "CAS*", Section: 1, Start: 0, End: int64(len(castTable))},
		{ID: director.FourCCCast, Section: 99, Start: int64(len(castTable)), End: int64(len(castTable) + len(member))},
	})
	kt := director.NewKeyTable(nil)

	c, err := NewLoader().BuildCast(container, kt, director.CastConfig{ID: 1, MinMember: 1, CastSection: 1})
	if err != nil {
		t.Fatalf("BuildCast: %v", err)
	}
	if len(c.Members) != 1 {
		t.Fatalf("len(Members) = %d, want 1 (slot 0 is sparse and must be skipped)", len(c.Members))
	}
	if _, ok := c.Members[1]; ok {
		t.Error("member number 1 (the sparse slot) should not exist")
	}
	if _, ok := c.Members[2]; !ok {
		t.Error("member number 2 (slot index 1) should exist")
	}
}

func TestTranslatePaletteIDAppliesOffsetOnlyToPositive(t *testing.T) {
	cases := []struct {
		fileID, cfgMin, mcslMin, want int32
	}{
		{600, 512, 1, 89}, // spec.md §8 scenario 5
		{0, 20, 17, 0},    // zero passes through
		{-1, 20, 17, -1},  // negative (system palette) passes through
	}
	for _, c := range cases {
		got := TranslatePaletteID(c.fileID, c.cfgMin, c.mcslMin)
		if got != c.want {
			t.Errorf("TranslatePaletteID(%d, %d, %d) = %d, want %d", c.fileID, c.cfgMin, c.mcslMin, got, c.want)
		}
	}
}

func TestBuildCastMissingCastTableReturnsError(t *testing.T) {
	container := director.NewChunkContainer(nil, nil)
	kt := director.NewKeyTable(nil)
	_, err := NewLoader().BuildCast(container, kt, director.CastConfig{ID: 9, CastSection: 404})
	if err == nil {
		t.Fatal("expected an error when the cast table section is absent")
	}
}
