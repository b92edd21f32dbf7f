package raster

import (
	"testing"

	"github.com/xmedia-go/director/pfr"
)

func TestBlitOutlineGlyphFillsSquare(t *testing.T) {
	surf := NewAlphaSurface(20, 20)
	g := pfr.OutlineGlyph{
		Contours: []pfr.Contour{
			{Commands: []pfr.PathCmd{
				{Op: pfr.OpMoveTo, X: 2, Y: 2},
				{Op: pfr.OpLineTo, X: 10, Y: 2},
				{Op: pfr.OpLineTo, X: 10, Y: 10},
				{Op: pfr.OpLineTo, X: 2, Y: 10},
				{Op: pfr.OpClose},
			}},
		},
	}

	BlitOutlineGlyph(surf, g, 0, 0, 1.0)

	if surf.Pix[5*surf.Stride()+5] == 0 {
		t.Error("expected coverage inside the filled square")
	}
	if surf.Pix[1*surf.Stride()+1] != 0 {
		t.Error("expected no coverage outside the filled square")
	}
}

func TestBlitOutlineGlyphRespectsOffsetAndScale(t *testing.T) {
	surf := NewAlphaSurface(40, 40)
	g := pfr.OutlineGlyph{
		Contours: []pfr.Contour{
			{Commands: []pfr.PathCmd{
				{Op: pfr.OpMoveTo, X: 0, Y: 0},
				{Op: pfr.OpLineTo, X: 4, Y: 0},
				{Op: pfr.OpLineTo, X: 4, Y: 4},
				{Op: pfr.OpLineTo, X: 0, Y: 4},
				{Op: pfr.OpClose},
			}},
		},
	}

	BlitOutlineGlyph(surf, g, 20, 20, 2.0)

	if surf.Pix[22*surf.Stride()+22] == 0 {
		t.Error("expected coverage at the scaled+offset square's center")
	}
	if surf.Pix[0] != 0 {
		t.Error("expected no coverage far from the offset square")
	}
}

func TestBlitBitmapGlyphCopiesSetBits(t *testing.T) {
	surf := NewAlphaSurface(8, 2)
	g := pfr.BitmapGlyph{
		XSize: 8,
		YSize: 2,
		// row0: 10000001, row1: 01000010
		Bits: []byte{0x81, 0x42},
	}

	BlitBitmapGlyph(surf, g, 0, 0)

	want := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0xFF, 0, 0xFF, 0, 0, 0, 0, 0xFF, 0}
	for i, w := range want {
		if surf.Pix[i] != w {
			t.Errorf("Pix[%d] = %#x, want %#x", i, surf.Pix[i], w)
		}
	}
}

func TestBlitBitmapGlyphClipsAtSurfaceEdge(t *testing.T) {
	surf := NewAlphaSurface(4, 4)
	g := pfr.BitmapGlyph{
		XSize: 8,
		YSize: 8,
		Bits:  make([]byte, 8), // all bits set to 1 below, still must not panic or overrun
	}
	for i := range g.Bits {
		g.Bits[i] = 0xFF
	}

	BlitBitmapGlyph(surf, g, -2, -2)

	for _, v := range surf.Pix {
		if v != 0xFF {
			t.Errorf("expected full coverage on the clipped-in region, got %#x", v)
		}
	}
}
