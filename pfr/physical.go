package pfr

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/xmedia-go/director/bitstream"
)

// ParsePhysicalFont reads the physical font section in [physOffset,
// physEnd): bounding box, extra items, private (vendor) aux data, blue
// zones, and the delta-encoded character table.
func ParsePhysicalFont(data []byte, physOffset, physEnd int, maxChars uint16) (PhysicalFontRecord, error) {
	var rec PhysicalFontRecord
	if physOffset >= len(data) {
		return rec, ErrNoPhysicalFont
	}
	if physEnd > len(data) {
		physEnd = len(data)
	}
	if physEnd <= physOffset {
		return rec, ErrPhysicalFontEnd
	}

	r := bitstream.NewAt(data, physOffset)

	_ = r.ReadU16() // FontRefNumber

	rec.OutlineResolution = r.ReadU16()
	if rec.OutlineResolution == 0 {
		rec.OutlineResolution = 2048
	}
	rec.MetricsResolution = r.ReadU16()
	if rec.MetricsResolution == 0 {
		rec.MetricsResolution = rec.OutlineResolution
	}

	rec.XMin = r.ReadI16()
	rec.YMin = r.ReadI16()
	rec.XMax = r.ReadI16()
	rec.YMax = r.ReadI16()

	extraItemsPresent := r.ReadBit()
	_ = r.ReadBit() // zero bit
	_ = r.ReadBit() // three_byte_gps_offset
	_ = r.ReadBit() // two_byte_gps_size
	_ = r.ReadBit() // ascii_code_specified
	proportionalEscapement := r.ReadBit()
	twoByteCharCode := r.ReadBit()
	_ = r.ReadBit() // vertical_escapement

	if proportionalEscapement {
		rec.Flags |= 0x04
	}
	rec.TwoByteCharCode = twoByteCharCode

	if !proportionalEscapement {
		rec.StandardSetWidth = r.ReadI16()
	}

	if extraItemsPresent {
		readPhysicalExtraItems(r, data, &rec)
	}

	parseAuxBytes(r, physEnd, maxChars, &rec)

	nBlueValues := int(r.ReadU8())
	rec.BlueValues = make([]int16, nBlueValues)
	for i := range rec.BlueValues {
		rec.BlueValues[i] = r.ReadI16()
	}
	rec.BlueFuzz = r.ReadU8()
	rec.BlueScale = r.ReadU8()

	rec.Metrics.StdVW = int16(r.ReadU16())
	rec.Metrics.StdHW = int16(r.ReadU16())
	rec.Metrics.XMin, rec.Metrics.YMin = rec.XMin, rec.YMin
	rec.Metrics.XMax, rec.Metrics.YMax = rec.XMax, rec.YMax
	rec.Metrics.UnitsPerEm = rec.OutlineResolution
	rec.Metrics.Ascender = rec.YMax
	rec.Metrics.Descender = rec.YMin

	nCharacters := int(r.ReadU16())
	rec.CharRecords = parseCharacterRecordsPFR1(r, rec.StandardSetWidth, nCharacters)

	return rec, nil
}

// readPhysicalExtraItems walks the extra-item TLV list following the flag
// byte. Each item is repositioned to item_start+item_size after parsing,
// regardless of how much of it the type-specific branch actually consumed
// — unknown or partially-understood item types must not desync the reader.
func readPhysicalExtraItems(r *bitstream.Reader, data []byte, rec *PhysicalFontRecord) {
	n := int(r.ReadU8())
	for i := 0; i < n; i++ {
		if r.Remaining() < 2 {
			break
		}
		itemSize := int(r.ReadU8())
		itemType := r.ReadU8()
		itemStart := r.Pos()

		switch itemType {
		case 1:
			readBitmapSectionSpec(r, rec)
		case 2:
			readFontIDItem(r, data, itemStart, itemSize, rec)
		case 3:
			readStemSnapTables(r)
		case 5:
			readExtraType5(r, itemSize, rec)
		default:
			r.Skip(itemSize)
		}

		r.SetPos(itemStart + itemSize)
	}
}

func readBitmapSectionSpec(r *bitstream.Reader, rec *PhysicalFontRecord) {
	_ = r.ReadBitsSigned(24) // fontBctSize
	_ = r.ReadBits(3)        // zeros
	twoByteNBmapChars := r.ReadBit()
	threeByteBctOffset := r.ReadBit()
	threeByteBctSize := r.ReadBit()
	twoByteYppm := r.ReadBit()
	twoByteXppm := r.ReadBit()
	nBitmapSizes := int(r.ReadBits(1))

	for i := 0; i < nBitmapSizes; i++ {
		if twoByteXppm {
			r.ReadBits(16)
		} else {
			r.ReadBits(8)
		}
		if twoByteYppm {
			r.ReadBits(16)
		} else {
			r.ReadBits(8)
		}

		_ = r.ReadBits(5) // zeros
		_ = r.ReadBit()   // three_byte_gps_offset
		_ = r.ReadBit()   // two_byte_gps_size
		_ = r.ReadBit()   // two_byte_char_code

		if threeByteBctSize {
			r.ReadBits(24)
		} else {
			r.ReadBits(16)
		}

		var bctOffset uint32
		if threeByteBctOffset {
			bctOffset = r.ReadBits(24)
		} else {
			bctOffset = r.ReadBits(16)
		}

		if twoByteNBmapChars {
			r.ReadBits(16)
		} else {
			r.ReadBits(8)
		}

		rec.BitmapSizeTableOffset = bctOffset
	}

	rec.HasBitmapSection = true
}

func readFontIDItem(r *bitstream.Reader, data []byte, itemStart, itemSize int, rec *PhysicalFontRecord) {
	if itemSize <= 0 || itemStart+itemSize > len(data) {
		return
	}
	var id []byte
	for i := 0; i < itemSize; i++ {
		ch := r.ReadU8()
		if ch == 0 {
			break
		}
		id = append(id, ch)
	}
	// The font-id string is a legacy Mac-Roman byte string, not UTF-8.
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(id)
	if err != nil {
		decoded = id
	}
	rec.FontID = string(decoded)
}

func readStemSnapTables(r *bitstream.Reader) {
	sshSize := int(r.ReadBits(4))
	ssvSize := int(r.ReadBits(4))
	for i := 0; i < ssvSize; i++ {
		r.ReadI16()
	}
	for i := 0; i < sshSize; i++ {
		r.ReadI16()
	}
}

func readExtraType5(r *bitstream.Reader, itemSize int, rec *PhysicalFontRecord) {
	if itemSize < 8 {
		return
	}
	rec.HasExtraType5 = true
	rec.ExtraType5Word36 = r.ReadI16()
	rec.ExtraType5Word37 = r.ReadI16()
	rec.ExtraType5LineSpacing = r.ReadI16()
	rec.ExtraType5Word39 = r.ReadI16()
}

// auxBytesSearchFloor is the nAuxBytes value at or above which the field
// no longer encodes a literal byte count; instead the reader slides a
// probe window forward a byte at a time looking for the record whose
// trailing character count matches maxChars (the "final marker" the
// reference decoder hunts for when vendor tools mis-wrote this field).
const auxBytesSearchFloor = 10000

func parseAuxBytes(r *bitstream.Reader, physEnd int, maxChars uint16, rec *PhysicalFontRecord) {
	nAuxBytes := int(r.ReadU24())
	switch {
	case nAuxBytes > 0 && nAuxBytes < auxBytesSearchFloor:
		aux := r.ReadBytes(nAuxBytes)
		parsePrivateRecordsFromAuxData(aux, rec)
	case nAuxBytes >= auxBytesSearchFloor:
		startPos := r.Pos()
		for r.Pos() != physEnd {
			probePos := r.Pos()

			nBlueValues := int(r.ReadU8())
			byteCounter := nBlueValues*2 + 6

			nCharsPos := r.Pos() + byteCounter
			if nCharsPos+2 > physEnd {
				r.SetPos(probePos + 1)
				continue
			}

			r.SetPos(nCharsPos)
			nCharacters := r.ReadU16()

			if nCharacters == maxChars {
				r.SetPos(startPos)
				aux := r.ReadBytes(probePos - startPos)
				parsePrivateRecordsFromAuxData(aux, rec)
				break
			}

			r.SetPos(probePos + 1)
		}
	}
}

// parsePrivateRecordsFromAuxData decodes the vendor-private TLV records
// (2-byte length, 2-byte type, payload) embedded in the aux data blob,
// extracting the handful of fields the legacy runtime actually consults:
// line-spacing metrics (type 5) and two mode/flag bytes (type 2, type 7).
func parsePrivateRecordsFromAuxData(aux []byte, rec *PhysicalFontRecord) {
	rec.PrivateFlags492 = 0
	rec.PrivateMode716 = 4
	rec.PrivateType2Byte28 = 0
	rec.PrivateType2Byte29 = 0

	if len(aux) < 4 {
		return
	}

	records := make(map[uint16][][]byte)
	off := 0
	for off+3 < len(aux) {
		length := int(aux[off])<<8 | int(aux[off+1])
		if length == 0 {
			break
		}
		if off+length > len(aux) {
			break
		}

		recType := uint16(aux[off+2])<<8 | uint16(aux[off+3])
		payloadLen := 0
		if length >= 4 {
			payloadLen = length - 4
		}
		if payloadLen == 0 {
			off += length
			continue
		}

		payload := aux[off+4 : off+4+payloadLen]
		records[recType] = append(records[recType], payload)
		off += length
	}

	if t5 := records[5]; len(t5) > 0 && len(t5[0]) >= 8 {
		d := t5[0]
		rec.HasExtraType5 = true
		rec.ExtraType5Word36 = int16(d[0])<<8 | int16(d[1])
		rec.ExtraType5Word37 = int16(d[2])<<8 | int16(d[3])
		rec.ExtraType5LineSpacing = int16(d[4])<<8 | int16(d[5])
		rec.ExtraType5Word39 = int16(d[6])<<8 | int16(d[7])
	}

	if t2 := records[2]; len(t2) > 0 {
		d := t2[0]
		if len(d) >= 28 {
			mode716 := d[27]
			if mode716 == 2 && rec.TwoByteCharCode {
				mode716 = 0
			}
			rec.PrivateMode716 = mode716
		}
		if len(d) >= 30 {
			rec.PrivateType2Byte28 = d[28]
			rec.PrivateType2Byte29 = d[29]
		}
	}

	v6, v7 := false, true
	if t7 := records[7]; len(t7) > 0 && len(t7[0]) >= 17 {
		d := t7[0]
		v6 = uint16(d[4])<<8|uint16(d[5]) > 550
		v7 = d[16] == 0
	} else if t2 := records[2]; len(t2) > 0 && len(t2[0]) >= 27 {
		d := t2[0]
		v6 = uint16(d[24])<<8|uint16(d[25]) >= 500
		v7 = d[26] == 0
	}
	if v6 {
		rec.PrivateFlags492 |= 1
	}
	if !v7 {
		rec.PrivateFlags492 |= 2
	}
}

// InitStrokeTablesFallback populates font-level stroke/bold zone tables
// from the physical font's bounding box, used whenever a glyph needs
// stroke synthesis and no per-glyph stroke table was supplied.
func InitStrokeTablesFallback(rec *PhysicalFontRecord) {
	xMin, xMax := int32(rec.XMin), int32(rec.XMax)
	yMin, yMax := int32(rec.YMin), int32(rec.YMax)

	rec.StrokeXKeys = []int16{
		-1, 0,
		int16(xMax / 6), int16(xMax / 3), int16(xMax / 2),
		int16(2 * xMax / 3), int16(5 * xMax / 6), int16(xMax),
	}
	rec.StrokeYKeys = []int16{
		-1, int16(yMin),
		int16(yMin + (yMax-yMin)/6), int16(yMin + (yMax-yMin)/3), int16(yMin + (yMax-yMin)/2),
		int16(yMin + 2*(yMax-yMin)/3), int16(yMin + 5*(yMax-yMin)/6), int16(yMax),
	}

	rec.StrokeXScales = make([]int16, 8)
	rec.StrokeYScales = make([]int16, 8)
	for i := range rec.StrokeXScales {
		rec.StrokeXScales[i] = 256
		rec.StrokeYScales[i] = 256
	}

	const shift = 12
	rec.StrokeXValues = []int32{
		0,
		0 << shift,
		(xMax / 6) << shift, (xMax / 3) << shift, (xMax / 2) << shift,
		(2 * xMax / 3) << shift, (5 * xMax / 6) << shift, xMax << shift,
	}
	rec.StrokeYValues = []int32{
		0,
		yMin << shift,
		(yMin + (yMax-yMin)/6) << shift, (yMin + (yMax-yMin)/3) << shift, (yMin + (yMax-yMin)/2) << shift,
		(yMin + 2*(yMax-yMin)/3) << shift, (yMin + 5*(yMax-yMin)/6) << shift, yMax << shift,
	}

	rec.StrokeTablesInitialized = true
}
