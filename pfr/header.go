package pfr

import "github.com/xmedia-go/director/bitstream"

const minHeaderSize = 58

// magicPFR1 is the 4-byte signature this decoder requires.
const magicPFR1 = "PFR1"

// ParseHeader reads the fixed-layout PFR1 header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < minHeaderSize {
		return h, ErrHeaderTooShort
	}

	r := bitstream.New(data)
	magic := string(r.ReadBytes(4))
	if magic != magicPFR1 {
		return h, &MagicError{Got: magic}
	}
	h.Version = 1

	h.Signature = uint32(r.ReadU16())
	h.HeaderSig2 = r.ReadU16()
	h.HeaderSize = r.ReadU16()
	h.LogFontDirSize = uint32(r.ReadU16())
	h.LogFontDirOffset = uint32(r.ReadU16())
	h.LogFontMaxSize = r.ReadU16()
	h.LogFontSectionSize = r.ReadU24()
	h.LogFontSectionOffset = r.ReadU24()
	h.PhysFontMaxSize = r.ReadU16()
	h.PhysFontSectionSize = r.ReadU24()
	h.PhysFontSectionOffset = r.ReadU24()
	h.GpsMaxSize = r.ReadU16()
	h.GpsSectionSize = r.ReadU24()
	h.GpsSectionOffset = r.ReadU24()
	h.MaxBlueValues = r.ReadU8()
	h.MaxXOrus = r.ReadU8()
	h.MaxYOrus = r.ReadU8()
	h.PhysFontMaxSizeHigh = r.ReadU8()

	flags := r.ReadU8()
	h.Flags = flags
	h.InvertBitmap = flags&0x02 != 0
	h.BlackPixel = flags&0x01 != 0

	r.Skip(3 + 3 + 3) // bctMaxSize, bctSetMaxSize, pftBctSetMaxSize (all u24, unused)

	h.NPhysFonts = r.ReadU16()

	r.Skip(1 + 1) // maxStemSnapV, maxStemSnapH (unused)

	h.MaxChars = r.ReadU16()

	return h, nil
}
