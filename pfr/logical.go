package pfr

import "github.com/xmedia-go/director/bitstream"

// maxLogicalFonts caps the large-directory read, matching the reference
// decoder's defensive bound (real PFR1 fonts embedded in a cast carry
// exactly one logical font).
const maxLogicalFonts = 16

// lineJoinMiter is the line_join_type value ("MITER_LINE_JOIN") that, when
// a stroke is present, is followed by an extra 24-bit field.
const lineJoinMiter = 0

// ParseLogicalFontDirectory reads the logical font directory described by
// header. PFR1 fonts with a small (<14 byte) LogFontDir store a single
// inline record directly in the LogFontSection instead of at
// LogFontDirOffset; both layouts are handled here.
func ParseLogicalFontDirectory(data []byte, header Header) ([]LogicalFontRecord, error) {
	if header.LogFontDirOffset == 0 || header.LogFontDirSize == 0 {
		return nil, nil
	}

	if header.LogFontDirSize < 14 {
		return parseInlineLogicalFont(data, header)
	}
	return parseLargeLogicalFontDirectory(data, header)
}

func parseInlineLogicalFont(data []byte, header Header) ([]LogicalFontRecord, error) {
	offset := int(header.LogFontSectionOffset)
	size := int(header.LogFontSectionSize)
	if size < 18 || offset <= 0 || offset >= len(data) {
		return nil, nil
	}

	r := bitstream.NewAt(data, offset)
	rec, ok := readLogicalFontRecord(r, header)
	if !ok {
		return nil, nil
	}
	return []LogicalFontRecord{rec}, nil
}

func parseLargeLogicalFontDirectory(data []byte, header Header) ([]LogicalFontRecord, error) {
	dirOffset := int(header.LogFontDirOffset)
	if dirOffset >= len(data) {
		return nil, nil
	}

	r := bitstream.NewAt(data, dirOffset)
	n := int(r.ReadU16())
	if n > maxLogicalFonts {
		n = maxLogicalFonts
	}

	fonts := make([]LogicalFontRecord, 0, n)
	for i := 0; i < n; i++ {
		rec, ok := readLogicalFontRecord(r, header)
		if !ok {
			break
		}
		fonts = append(fonts, rec)
	}
	return fonts, nil
}

// readLogicalFontRecord reads one record's font matrix, stroke/bold/extra
// item side data (discarded — see Non-goals), and physical font pointer.
func readLogicalFontRecord(r *bitstream.Reader, header Header) (LogicalFontRecord, bool) {
	var rec LogicalFontRecord
	for j := 0; j < 4; j++ {
		rec.FontMatrix[j] = r.ReadBitsSigned(24)
	}

	_ = r.ReadBit() // zero bit
	extraItemsPresent := r.ReadBit()
	twoByteBoldThickness := r.ReadBit()
	boldFlag := r.ReadBit()
	twoByteStrokeThickness := r.ReadBit()
	strokeFlag := r.ReadBit()
	lineJoinType := r.ReadBits(2)

	switch {
	case strokeFlag:
		if twoByteStrokeThickness {
			r.ReadBits(16)
		} else {
			r.ReadBits(8)
		}
		if lineJoinType == lineJoinMiter {
			r.ReadBits(24)
		}
	case boldFlag:
		if twoByteBoldThickness {
			r.ReadBits(16)
		} else {
			r.ReadBits(8)
		}
	}

	if extraItemsPresent {
		n := r.ReadBits(8)
		for i := uint32(0); i < n; i++ {
			itemSize := r.ReadBits(8)
			_ = r.ReadBits(8) // item type
			for b := uint32(0); b < itemSize; b++ {
				r.ReadBits(8)
			}
		}
	}

	physFontSize := r.ReadBits(16)
	physFontOffset := r.ReadBits(24)

	var sizeIncrement uint32
	if header.PhysFontMaxSizeHigh != 0 {
		sizeIncrement = r.ReadBits(8)
	}

	rec.Size = physFontSize + sizeIncrement*65536
	rec.Offset = physFontOffset
	return rec, true
}
