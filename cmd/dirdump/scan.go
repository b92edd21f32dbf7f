package main

import (
	"encoding/binary"
	"fmt"

	"github.com/xmedia-go/director"
)

// RIFX top-level framing and the KEY* key-table chunk's on-disk layout were
// both filtered from the retrieval pack along with the rest of the
// key-table decoding (see cast/scriptcontext.go's and cast/loader.go's
// doc comments for the sibling cases). scanRIFX and parseKeyTableChunk are
// this command's own minimal, self-designed readers for them, grounded
// only on the public, well-documented IFF/EA-IFF-85 chunk shape (a 4-byte
// FOURCC tag plus a 4-byte big-endian length, recursively) and on the
// owner/child/code triple director.KeyTableEntry already names. Real
// Director files additionally indirect through "imap"/"mmap" chunks this
// scanner does not resolve; it reads the top-level chunk sequence
// directly, which is enough to exercise the library end-to-end on a
// well-formed file.
const (
	magicRIFX = "RIFX"
	magicXFIR = "XFIR"
)

// scanRIFX reads the top-level chunk sequence of a RIFX-framed file and
// returns a director.ChunkContainer over it. Section ids are assigned by
// chunk order (0, 1, 2, ...), since the real section-id space is defined
// by the imap/mmap indirection this scanner skips.
func scanRIFX(data []byte) (*director.ChunkContainer, error) {
	if len(data) < 12 {
		return nil, &director.MalformedFileError{Err: fmt.Errorf("file too short for a RIFX header")}
	}
	magic := string(data[0:4])
	if magic != magicRIFX && magic != magicXFIR {
		return nil, &director.InvalidMagicError{Want: magicRIFX, Got: magic}
	}
	// data[4:8] is the total size, data[8:12] is the form type; neither is
	// needed to walk the chunk sequence that follows.

	var chunks []director.Chunk
	pos := int64(12)
	var section director.SectionID
	for pos+8 <= int64(len(data)) {
		fourcc := director.FOURCC(data[pos : pos+4])
		size := int64(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		start := pos + 8
		end := start + size
		if end > int64(len(data)) {
			return nil, &director.MalformedFileError{Err: fmt.Errorf("chunk %q size runs past end of file", fourcc), Pos: pos}
		}
		chunks = append(chunks, director.Chunk{ID: fourcc, Section: section, Start: start, End: end})
		section++

		pos = end
		if size%2 == 1 {
			pos++ // chunks are padded to an even length
		}
	}

	return director.NewChunkContainer(data, chunks), nil
}

const keyTableEntrySize = 12

// parseKeyTableChunk decodes a KEY* chunk: a 12-byte header (two uint16
// entry-size fields, then two uint32 count fields, all big-endian; only
// usedCount, the second count at bytes 8..12, is consulted here) followed
// by usedCount 12-byte records of
// {child SectionID, owner SectionID, FOURCC}.
func parseKeyTableChunk(data []byte) (*director.KeyTable, error) {
	const headerSize = 12
	if len(data) < headerSize {
		return nil, fmt.Errorf("dirdump: KEY* chunk too short: %d bytes", len(data))
	}
	usedCount := binary.BigEndian.Uint32(data[8:12])

	var entries []director.KeyTableEntry
	for i := uint32(0); i < usedCount; i++ {
		off := headerSize + int(i)*keyTableEntrySize
		if off+keyTableEntrySize > len(data) {
			break
		}
		child := director.SectionID(int32(binary.BigEndian.Uint32(data[off : off+4])))
		owner := director.SectionID(int32(binary.BigEndian.Uint32(data[off+4 : off+8])))
		code := director.FOURCC(data[off+8 : off+12])
		entries = append(entries, director.KeyTableEntry{Owner: owner, Child: child, Code: code})
	}
	return director.NewKeyTable(entries), nil
}
