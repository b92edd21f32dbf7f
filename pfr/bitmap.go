package pfr

import "github.com/xmedia-go/director/bitstream"

// Bitmap glyph body format
//
// As with the outline body (see glyph.go), the upstream bitmap-glyph
// parser was not part of the retrieval pack. byte0's bit7 format tag
// matches the outline body's; the three width flags below are this
// package's own addition, each selecting an 8- or 16-bit field so a
// bitmap glyph with either a small or a large canvas is representable.
//
// byte0: bit 7 format tag (always 1 here)
//
//	bit 6   sizeIs16: xSize/ySize are 16-bit (else 8-bit)
//	bit 5   posIs16: xPos/yPos are 16-bit signed (else 8-bit signed)
//	bit 4   escIs16: escapement is 16-bit (else 8-bit)
//	remaining bits reserved, always zero
//
// The pixel data that follows is packed 1 bit per pixel, MSB first, each
// row padded to a whole byte.
const (
	bitmapFlagSizeIs16 = 0x40
	bitmapFlagPosIs16  = 0x20
	bitmapFlagEscIs16  = 0x10
)

// ParseBitmapGlyph decodes a bitmap glyph body. ok is false if body is too
// short to hold even the fixed header.
func ParseBitmapGlyph(body []byte, charCode uint32) (g BitmapGlyph, ok bool) {
	if len(body) < 2 {
		return BitmapGlyph{}, false
	}

	r := bitstream.New(body)
	b0 := r.ReadU8()

	headerLen := 1 + 2 + 2 + 1
	if b0&bitmapFlagSizeIs16 != 0 {
		headerLen += 2
	}
	if b0&bitmapFlagPosIs16 != 0 {
		headerLen += 2
	}
	if b0&bitmapFlagEscIs16 != 0 {
		headerLen++
	}
	if len(body) < headerLen {
		return BitmapGlyph{}, false
	}

	g.CharCode = charCode

	if b0&bitmapFlagSizeIs16 != 0 {
		g.XSize = r.ReadU16()
		g.YSize = r.ReadU16()
	} else {
		g.XSize = uint16(r.ReadU8())
		g.YSize = uint16(r.ReadU8())
	}

	if b0&bitmapFlagPosIs16 != 0 {
		g.XPos = r.ReadI16()
		g.YPos = r.ReadI16()
	} else {
		g.XPos = int16(int8(r.ReadU8()))
		g.YPos = int16(int8(r.ReadU8()))
	}

	if b0&bitmapFlagEscIs16 != 0 {
		g.Escapement = r.ReadU16()
	} else {
		g.Escapement = uint16(r.ReadU8())
	}

	rowBytes := (int(g.XSize) + 7) / 8
	g.Bits = r.ReadBytes(rowBytes * int(g.YSize))

	return g, true
}
