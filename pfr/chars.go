package pfr

import "github.com/xmedia-go/director/bitstream"

// parseCharacterRecordsPFR1 decodes the PFR1 delta-encoded character
// table. Each field (char code, set width, glyph-program size and
// offset) is derived from the previous record's running state; a
// per-record flag byte selects, for each of the four fields independently,
// whether it is a delta on that state or an absolute value read from the
// stream.
func parseCharacterRecordsPFR1(r *bitstream.Reader, standardSetWidth int16, nCharacters int) []CharacterRecord {
	if nCharacters <= 0 {
		return nil
	}

	records := make([]CharacterRecord, 0, nCharacters)

	charCode := int32(-1)
	setWidth := int32(standardSetWidth)
	gpsSize := int32(0)
	gpsOffset := int32(0)

	for i := 0; i < nCharacters; i++ {
		if r.Remaining() < 1 {
			break
		}

		flags := r.ReadU8()

		// The next offset in sequential mode is always previous+previous
		// size, computed before this record's own deltas are read.
		nextGpsOffset := gpsOffset + gpsSize

		// charCode is always incremented by 1 first; mode 1/2 then add a
		// further delta on top. Mode 3 behaves the same as mode 0.
		charCode++
		switch flags & 0x03 {
		case 1:
			charCode += int32(r.ReadU8())
		case 2:
			charCode += int32(r.ReadU16())
		}

		switch (flags >> 2) & 0x03 {
		case 1:
			setWidth += int32(r.ReadU8())
		case 2:
			setWidth -= int32(r.ReadU8())
		case 3:
			setWidth = int32(r.ReadI16())
		}

		switch (flags >> 4) & 0x03 {
		case 0:
			gpsSize = int32(r.ReadU8())
		case 1:
			gpsSize = int32(r.ReadU8()) + 256
		case 2:
			gpsSize = int32(r.ReadU8()) + 512
		case 3:
			gpsSize = int32(r.ReadU16())
		}

		switch (flags >> 6) & 0x03 {
		case 0:
			gpsOffset = nextGpsOffset
		case 1:
			gpsOffset = nextGpsOffset + int32(r.ReadU8())
		case 2:
			gpsOffset = int32(r.ReadU16())
		case 3:
			gpsOffset = int32(r.ReadU24())
		}

		records = append(records, CharacterRecord{
			CharCode:  uint32(charCode),
			SetWidth:  uint16(setWidth),
			GpsSize:   uint32(gpsSize),
			GpsOffset: uint32(gpsOffset),
		})
	}

	return records
}
