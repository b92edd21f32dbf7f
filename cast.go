package director

// MemberKind tags the variant held by a Member.
type MemberKind int

const (
	MemberUnknown MemberKind = iota
	MemberBitmap
	MemberField
	MemberButton
	MemberSound
	MemberPalette
	MemberText
	MemberScript
	MemberXMedia
)

func (k MemberKind) String() string {
	switch k {
	case MemberBitmap:
		return "bitmap"
	case MemberField:
		return "field"
	case MemberButton:
		return "button"
	case MemberSound:
		return "sound"
	case MemberPalette:
		return "palette"
	case MemberText:
		return "text"
	case MemberScript:
		return "script"
	case MemberXMedia:
		return "xmedia"
	default:
		return "unknown"
	}
}

// ChildChunk is one sub-chunk discovered via the key-table for a member.
// Failed parses are retained as a nil Data with the triggering error
// attached, so downstream indices stay stable (spec.md's "elided, not
// removed" rule).
type ChildChunk struct {
	Section SectionID
	Code    FOURCC
	Data    []byte
	Err     error
}

// Member is a tagged union over the cast member variants named in
// spec.md's data model. Only the shape consumed by the core (key-table
// walking, section bookkeeping) is modeled here; property-sheet accessors
// on individual member types are out of scope.
type Member struct {
	Kind     MemberKind
	Number   int32
	Name     string
	Section  SectionID
	Record   []byte // the CASt chunk's own payload, unparsed
	Children []ChildChunk
}

// Diagnostic records a non-fatal failure encountered while loading a cast:
// a missing section, a child parse failure, or similar. These replace the
// ad hoc logging spec.md's error taxonomy describes for per-member/per-child
// failures (see §2 of SPEC_FULL.md).
type Diagnostic struct {
	Section SectionID
	Member  int32
	Err     error
}

// ScriptContext is the ordered table of compiled scripts plus the name
// table for a cast, built from the Lctx/LctX chunk (see resolveScriptContext in package cast).
type ScriptContext struct {
	// Scripts maps 1-based slot index -> script chunk bytes.
	Scripts map[int]ScriptChunk
	// Names is the cast's script name sequence, from the Lnam chunk.
	Names []string
}

// ScriptChunk is the unparsed payload of one Lscr chunk. The bytecode
// interpreter that would execute it is out of scope for this module.
type ScriptChunk struct {
	Section SectionID
	Data    []byte
}

// Cast is the semantic, fully-resolved object model for one cast: its
// members, optional script context, and the section_to_member back-pointer
// map used for error attribution and orphan-chunk diagnostics.
type Cast struct {
	ID      uint32
	Name    string
	Members map[int32]*Member

	ScriptContext *ScriptContext
	// ScriptContextVariant records which of Lctx/LctX resolved this cast's
	// script context; downstream script resolution treats this as a
	// per-cast capability flag.
	ScriptContextVariant FOURCC
	// ScriptContextChildSectionIDs holds the name-table section id and every
	// walked script section id — these are NOT children of the
	// script-context chunk in the key-table, so they must be tracked
	// separately (spec.md §3, ScriptContext invariant).
	ScriptContextChildSectionIDs map[SectionID]struct{}

	// SectionToMember maps every section id reachable from a member
	// (the member's own CASt chunk and all of its children) back to
	// (member_number, member_name).
	SectionToMember map[SectionID]MemberRef

	// PaletteIDOffset == config.min_member - mcsl.min_member, applied only
	// to positive palette references (spec.md §3, §6).
	PaletteIDOffset int16

	Diagnostics []Diagnostic
}

// MemberRef is the back-pointer value stored in Cast.SectionToMember.
type MemberRef struct {
	Number int32
	Name   string
}
