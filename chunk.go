// Package director implements the core of a legacy multimedia-authoring
// runtime: the chunked container decoder, the cast loader built on top of
// it, and the object model shared by the pfr, cast, arena, and media
// packages.
package director

import "fmt"

// FOURCC is a four-character chunk type code, e.g. "CASt" or "snd ".
type FOURCC string

func (f FOURCC) String() string { return string(f) }

// Well-known FOURCC values observed in the container.
const (
	FourCCCast          FOURCC = "CASt"
	FourCCScriptContext FOURCC = "Lctx"
	FourCCScriptContext2 FOURCC = "LctX"
	FourCCScript        FOURCC = "Lscr"
	FourCCScriptNames   FOURCC = "Lnam"
	FourCCStyledText    FOURCC = "STXT"
	FourCCSound         FOURCC = "snd "
	FourCCExtendedMedia FOURCC = "XMED"
	FourCCKeyTable      FOURCC = "KEY*"
)

// SectionID is an opaque handle naming a chunk within a ChunkContainer.
// Section ids are never dereferenced directly by other components; every
// reference to a chunk is a SectionID resolved through the container that
// owns it.
type SectionID int32

// Chunk is an addressable, immutable-after-load byte range identified by a
// FOURCC and a section id.
type Chunk struct {
	ID      FOURCC
	Section SectionID
	Start   int64
	End     int64
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int64 { return c.End - c.Start }

// ChunkContainer indexes a raw byte blob into section id -> (FOURCC, byte
// range) and serves byte slices on demand. It never parses chunk payloads.
type ChunkContainer struct {
	data   []byte
	chunks map[SectionID]Chunk
}

// NewChunkContainer builds a container over data from a pre-scanned chunk
// table. Callers that read a real RIFX-style stream build this table by
// walking the file's section headers; that walk is outside the core (it
// is peripheral container-framing glue), so NewChunkContainer takes the
// already-resolved table directly.
func NewChunkContainer(data []byte, chunks []Chunk) *ChunkContainer {
	idx := make(map[SectionID]Chunk, len(chunks))
	for _, c := range chunks {
		idx[c.Section] = c
	}
	return &ChunkContainer{data: data, chunks: idx}
}

// Chunk returns the chunk descriptor for a section id.
func (c *ChunkContainer) Chunk(id SectionID) (Chunk, bool) {
	ch, ok := c.chunks[id]
	return ch, ok
}

// Has reports whether the container holds the given section id.
func (c *ChunkContainer) Has(id SectionID) bool {
	_, ok := c.chunks[id]
	return ok
}

// Get returns the raw bytes backing a section, regardless of its FOURCC.
func (c *ChunkContainer) Get(id SectionID) ([]byte, error) {
	ch, ok := c.chunks[id]
	if !ok {
		return nil, fmt.Errorf("section %d: %w", id, ErrMissingSection)
	}
	return c.data[ch.Start:ch.End], nil
}

// GetTyped returns the raw bytes backing a section, checking that its
// FOURCC matches want.
func (c *ChunkContainer) GetTyped(id SectionID, want FOURCC) ([]byte, error) {
	ch, ok := c.chunks[id]
	if !ok {
		return nil, fmt.Errorf("section %d: %w", id, ErrMissingSection)
	}
	if ch.ID != want {
		return nil, &TypeMismatchError{Section: id, Want: want, Got: ch.ID}
	}
	return c.data[ch.Start:ch.End], nil
}

// Len returns the number of chunks the container holds.
func (c *ChunkContainer) Len() int { return len(c.chunks) }
