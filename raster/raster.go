package raster

import (
	goimage "image"

	"golang.org/x/image/vector"

	"github.com/xmedia-go/director/pfr"
)

// BlitOutlineGlyph rasterizes g's contours at the given scale (glyph design
// units to pixels) and composites the coverage onto dst at (x, y), which is
// the glyph's top-left corner in dst's pixel space. Grounded on the
// teacher's converter/image_renderer.go Character method: build a path from
// glyph contours by calling Raster.MoveTo/LineTo/QuadTo/CubeTo, then
// Raster.Draw; here the draw target is an image.Alpha instead of an RGBA
// image, since a PixelSurface carries coverage only, not color.
func BlitOutlineGlyph(dst PixelSurface, g pfr.OutlineGlyph, x, y int, scale float32) {
	bounds := goimage.Rect(0, 0, dst.Width(), dst.Height())
	r := vector.NewRasterizer(dst.Width(), dst.Height())

	for _, c := range g.Contours {
		for _, cmd := range c.Commands {
			switch cmd.Op {
			case pfr.OpMoveTo:
				r.MoveTo(float32(x)+cmd.X*scale, float32(y)+cmd.Y*scale)
			case pfr.OpLineTo:
				r.LineTo(float32(x)+cmd.X*scale, float32(y)+cmd.Y*scale)
			case pfr.OpQuadTo:
				r.QuadTo(
					float32(x)+cmd.CX1*scale, float32(y)+cmd.CY1*scale,
					float32(x)+cmd.X*scale, float32(y)+cmd.Y*scale,
				)
			case pfr.OpCubeTo:
				r.CubeTo(
					float32(x)+cmd.CX1*scale, float32(y)+cmd.CY1*scale,
					float32(x)+cmd.CX2*scale, float32(y)+cmd.CY2*scale,
					float32(x)+cmd.X*scale, float32(y)+cmd.Y*scale,
				)
			case pfr.OpClose:
				r.ClosePath()
			}
		}
	}

	alpha := &goimage.Alpha{Pix: make([]byte, dst.Width()*dst.Height()), Stride: dst.Width(), Rect: bounds}
	r.Draw(alpha, bounds, goimage.Opaque, goimage.Point{})
	blendAlpha(dst, alpha)
}

// BlitBitmapGlyph copies g's 1-bit-per-pixel rows onto dst at (x, y),
// writing full (0xFF) coverage for set pixels and leaving unset pixels
// untouched. Grounded on pfr.BitmapGlyph.Bits' row-packing convention
// documented in pfr/types.go.
func BlitBitmapGlyph(dst PixelSurface, g pfr.BitmapGlyph, x, y int) {
	rowBytes := (int(g.XSize) + 7) / 8
	stride := dst.Stride()
	buf := dst.Bytes()

	for row := 0; row < int(g.YSize); row++ {
		dstY := y + row
		if dstY < 0 || dstY >= dst.Height() {
			continue
		}
		rowStart := row * rowBytes
		if rowStart+rowBytes > len(g.Bits) {
			break
		}
		rowBits := g.Bits[rowStart : rowStart+rowBytes]
		for col := 0; col < int(g.XSize); col++ {
			dstX := x + col
			if dstX < 0 || dstX >= dst.Width() {
				continue
			}
			byteIdx := col / 8
			bitIdx := 7 - uint(col%8)
			if rowBits[byteIdx]&(1<<bitIdx) != 0 {
				buf[dstY*stride+dstX] = 0xFF
			}
		}
	}
}

// blendAlpha copies src's per-pixel coverage into dst, taking the maximum
// of any existing coverage already present (so overlapping glyphs don't
// darken each other below either glyph's own coverage).
func blendAlpha(dst PixelSurface, src *goimage.Alpha) {
	buf := dst.Bytes()
	stride := dst.Stride()
	for row := 0; row < dst.Height(); row++ {
		srcRow := src.Pix[row*src.Stride : row*src.Stride+src.Stride]
		for col := 0; col < dst.Width(); col++ {
			if v := srcRow[col]; v > buf[row*stride+col] {
				buf[row*stride+col] = v
			}
		}
	}
}
