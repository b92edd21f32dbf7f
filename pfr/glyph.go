package pfr

import "github.com/xmedia-go/director/bitstream"

// Glyph program body format
//
// The upstream reference decoder's glyph-body parser was not available in
// the retrieval pack (only its call site survives, in decode.go's
// zeros_field dispatch). This file defines this package's own
// self-consistent bit-packed encoding for the GPS glyph body, following
// the same idioms as the rest of PFR1 (MSB-first bit packing, a 2-bit tag
// selecting field width, coordinates stored as deltas from the previous
// point within a contour) so a glyph program produced by the tests'
// encodeOutlineForTest helper round-trips through ParseOutlineBody.
//
// byte0:
//
//	bit  7    format tag: 0=outline, 1=bitmap (see bitmap.go)
//	bits 6-5  coordinate width: 0=8-bit signed, 1=16-bit signed, 2=24-bit signed, 3=absolute 16-bit
//	bit  4    compound flag: glyph is a list of translated component references
//	bit  3    stroke flag: contours are synthesized from line/curve stroke records
//	remaining bits reserved, always zero
//
// Exactly one of compound/stroke may be set; neither set means a direct
// contour list.
const (
	glyphFormatBitmap = 0x80
	glyphFlagCompound = 0x10
	glyphFlagStroke   = 0x08
)

type coordWidth uint8

const (
	coordWidth8 coordWidth = iota
	coordWidth16
	coordWidth24
	coordWidthAbs16
)

func readCoord(r *bitstream.Reader, w coordWidth, prev float32) float32 {
	switch w {
	case coordWidth8:
		return prev + float32(int8(r.ReadU8()))
	case coordWidth16:
		return prev + float32(r.ReadI16())
	case coordWidth24:
		return prev + float32(r.ReadI24())
	default: // coordWidthAbs16
		return float32(r.ReadI16())
	}
}

// componentResolver looks up the outline contours for a compound glyph's
// component, by its byte offset into the GPS section.
type componentResolver func(gpsOffset uint32) ([]Contour, bool)

// maxCompoundDepth caps compound-glyph component resolution so a cyclic or
// adversarial reference graph cannot recurse indefinitely.
const maxCompoundDepth = 8

// ParseOutlineBody decodes an outline glyph program (the non-bitmap GPS
// body). resolve is consulted for compound glyphs' component references;
// pass nil when components are never expected (e.g. in unit tests for the
// direct-contour path).
func ParseOutlineBody(body []byte, charCode uint32, setWidth uint16, resolve componentResolver) OutlineGlyph {
	return parseOutlineBodyDepth(body, charCode, setWidth, resolve, 0)
}

func parseOutlineBodyDepth(body []byte, charCode uint32, setWidth uint16, resolve componentResolver, depth int) OutlineGlyph {
	g := OutlineGlyph{CharCode: charCode, SetWidth: float32(setWidth)}
	if len(body) == 0 {
		return g
	}

	r := bitstream.New(body)
	b0 := r.ReadU8()
	width := coordWidth((b0 >> 5) & 0x03)

	switch {
	case b0&glyphFlagCompound != 0:
		if depth >= maxCompoundDepth || resolve == nil {
			return g
		}
		n := int(r.ReadU8())
		for i := 0; i < n; i++ {
			compOffset := r.ReadU24()
			dx := float32(r.ReadI16())
			dy := float32(r.ReadI16())
			contours, ok := resolve(compOffset)
			if !ok {
				continue
			}
			for _, c := range contours {
				g.Contours = append(g.Contours, translateContour(c, dx, dy))
			}
		}
	case b0&glyphFlagStroke != 0:
		n := int(r.ReadU8())
		strokes := make([]stroke, 0, n)
		for i := 0; i < n; i++ {
			strokes = append(strokes, readStroke(r, width))
		}
		g.Contours = buildContoursFromStrokes(strokes)
	default:
		nContours := int(r.ReadU8())
		for i := 0; i < nContours; i++ {
			g.Contours = append(g.Contours, readContour(r, width))
		}
	}

	return g
}

func translateContour(c Contour, dx, dy float32) Contour {
	out := Contour{Commands: make([]PathCmd, len(c.Commands))}
	for i, cmd := range c.Commands {
		cmd.X += dx
		cmd.Y += dy
		cmd.CX1 += dx
		cmd.CY1 += dy
		cmd.CX2 += dx
		cmd.CY2 += dy
		out.Commands[i] = cmd
	}
	return out
}

func readContour(r *bitstream.Reader, width coordWidth) Contour {
	var c Contour
	n := int(r.ReadU8())
	var x, y float32
	for i := 0; i < n; i++ {
		op := PathOp(r.ReadBits(2))
		switch op {
		case OpMoveTo, OpLineTo:
			x = readCoord(r, width, x)
			y = readCoord(r, width, y)
			c.Commands = append(c.Commands, PathCmd{Op: op, X: x, Y: y})
		case OpQuadTo:
			cx := readCoord(r, width, x)
			cy := readCoord(r, width, y)
			x = readCoord(r, width, cx)
			y = readCoord(r, width, cy)
			c.Commands = append(c.Commands, PathCmd{Op: op, X: x, Y: y, CX1: cx, CY1: cy})
		case OpCubeTo:
			c1x := readCoord(r, width, x)
			c1y := readCoord(r, width, y)
			c2x := readCoord(r, width, c1x)
			c2y := readCoord(r, width, c1y)
			x = readCoord(r, width, c2x)
			y = readCoord(r, width, c2y)
			c.Commands = append(c.Commands, PathCmd{Op: op, X: x, Y: y, CX1: c1x, CY1: c1y, CX2: c2x, CY2: c2y})
		}
	}
	if len(c.Commands) > 0 {
		c.Commands = append(c.Commands, PathCmd{Op: OpClose})
	}
	return c
}
