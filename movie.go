package director

// Movie is the top-level decoded object: the container plus every cast it
// owns. Loading a movie never fails outright on a damaged cast or member;
// failures are attached as Diagnostics on the owning Cast so a caller can
// still use whatever decoded cleanly (spec.md's "one bad member must not
// sink the file" requirement).
type Movie struct {
	Container *ChunkContainer
	KeyTable  *KeyTable
	Casts     []*Cast
}

// CastConfig names one cast a movie owns: its id, name, member-number base,
// and the section holding its member table (a "CAS*" chunk: a flat array of
// member section ids, one per slot, 0 for an empty slot). These come from
// the movie's own cast library, which is peripheral container-framing glue
// outside the core, so LoadMovie takes them already resolved rather than
// discovering them itself (mirrors NewChunkContainer's pre-scanned table).
type CastConfig struct {
	ID          uint32
	Name        string
	MinMember   int32
	CastSection SectionID
	// PaletteIDOffset adjusts positive palette references embedded in this
	// cast's bitmap members from file-stored (Config-based) numbering to
	// loaded-member (MCsL-based) numbering; see cast.TranslatePaletteID.
	PaletteIDOffset int16
}

// CastBuilder constructs a Cast from a CastConfig by walking the container
// and key-table. It is implemented by cast.Loader; Movie itself only
// orchestrates calling it once per configured cast, so that this package
// does not need to import the cast package (which imports this one).
type CastBuilder interface {
	BuildCast(container *ChunkContainer, kt *KeyTable, cfg CastConfig) (*Cast, error)
}

// LoadMovie walks every cast in configs through builder, collecting whatever
// casts load and recording the rest as a diagnostic-only cast entry (Members
// == nil) so the index lines up with the caller's configuration table rather
// than silently shrinking.
func LoadMovie(container *ChunkContainer, kt *KeyTable, configs []CastConfig, builder CastBuilder) *Movie {
	m := &Movie{Container: container, KeyTable: kt}
	for _, cfg := range configs {
		cast, err := builder.BuildCast(container, kt, cfg)
		if err != nil {
			m.Casts = append(m.Casts, &Cast{
				ID:          cfg.ID,
				Name:        cfg.Name,
				Diagnostics: []Diagnostic{{Section: cfg.CastSection, Err: err}},
			})
			continue
		}
		m.Casts = append(m.Casts, cast)
	}
	return m
}
