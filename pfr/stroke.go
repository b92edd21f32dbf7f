package pfr

import (
	"math"

	"github.com/xmedia-go/director/bitstream"
)

// strokeType tags a stroke record's geometry.
type strokeType uint8

const (
	strokeLine strokeType = iota
	strokeDiagonal
	strokeCurve
)

// stroke is one stroke-synthesis primitive: a straight or cubic-curve
// segment with a width, expanded into a filled ribbon contour by
// buildContoursFromStrokes. Diagonal strokes use the same ribbon
// construction as straight lines.
type stroke struct {
	typ                        strokeType
	width                      float32
	startX, startY             float32
	endX, endY                 float32
	control1X, control1Y       float32
	control2X, control2Y       float32
}

func readStroke(r *bitstream.Reader, width coordWidth) stroke {
	var s stroke
	s.typ = strokeType(r.ReadU8())
	s.width = float32(r.ReadU8()) / 16.0

	s.startX = readCoord(r, width, 0)
	s.startY = readCoord(r, width, 0)
	if s.typ == strokeCurve {
		s.control1X = readCoord(r, width, s.startX)
		s.control1Y = readCoord(r, width, s.startY)
		s.control2X = readCoord(r, width, s.control1X)
		s.control2Y = readCoord(r, width, s.control1Y)
		s.endX = readCoord(r, width, s.control2X)
		s.endY = readCoord(r, width, s.control2Y)
	} else {
		s.endX = readCoord(r, width, s.startX)
		s.endY = readCoord(r, width, s.startY)
	}
	return s
}

// buildContoursFromStrokes expands each stroke into a filled ribbon
// contour: a rectangle perpendicular-offset from the segment for straight
// strokes, or a flattened-then-offset ribbon for curves.
func buildContoursFromStrokes(strokes []stroke) []Contour {
	var contours []Contour
	for _, s := range strokes {
		var c Contour
		switch s.typ {
		case strokeCurve:
			c = buildCurveStroke(s)
		default:
			c = buildLineStroke(s)
		}
		if len(c.Commands) > 0 {
			contours = append(contours, c)
		}
	}
	return contours
}

func buildLineStroke(s stroke) Contour {
	half := s.width * 0.5
	dx := s.endX - s.startX
	dy := s.endY - s.startY
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	if length < 0.001 {
		return Contour{Commands: []PathCmd{
			{Op: OpMoveTo, X: s.startX - half, Y: s.startY - half},
			{Op: OpLineTo, X: s.startX + half, Y: s.startY - half},
			{Op: OpLineTo, X: s.startX + half, Y: s.startY + half},
			{Op: OpLineTo, X: s.startX - half, Y: s.startY + half},
			{Op: OpClose},
		}}
	}

	perpX := -dy / length * half
	perpY := dx / length * half

	return Contour{Commands: []PathCmd{
		{Op: OpMoveTo, X: s.startX + perpX, Y: s.startY + perpY},
		{Op: OpLineTo, X: s.endX + perpX, Y: s.endY + perpY},
		{Op: OpLineTo, X: s.endX - perpX, Y: s.endY - perpY},
		{Op: OpLineTo, X: s.startX - perpX, Y: s.startY - perpY},
		{Op: OpClose},
	}}
}

type point struct{ x, y float32 }

func buildCurveStroke(s stroke) Contour {
	half := s.width * 0.5
	points := flattenCubicBezier(
		s.startX, s.startY,
		s.control1X, s.control1Y,
		s.control2X, s.control2Y,
		s.endX, s.endY,
		0.5,
	)
	if len(points) < 2 {
		return Contour{}
	}

	left := make([]point, 0, len(points))
	right := make([]point, 0, len(points))

	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		dx := p1.x - p0.x
		dy := p1.y - p0.y
		length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if length < 0.001 {
			continue
		}
		perpX := -dy / length * half
		perpY := dx / length * half

		if i == 0 {
			left = append(left, point{p0.x + perpX, p0.y + perpY})
			right = append(right, point{p0.x - perpX, p0.y - perpY})
		}
		left = append(left, point{p1.x + perpX, p1.y + perpY})
		right = append(right, point{p1.x - perpX, p1.y - perpY})
	}

	if len(left) < 2 {
		return Contour{}
	}

	var c Contour
	c.Commands = append(c.Commands, PathCmd{Op: OpMoveTo, X: left[0].x, Y: left[0].y})
	for i := 1; i < len(left); i++ {
		c.Commands = append(c.Commands, PathCmd{Op: OpLineTo, X: left[i].x, Y: left[i].y})
	}
	for i := len(right) - 1; i >= 0; i-- {
		c.Commands = append(c.Commands, PathCmd{Op: OpLineTo, X: right[i].x, Y: right[i].y})
	}
	c.Commands = append(c.Commands, PathCmd{Op: OpClose})
	return c
}

// flattenCubicBezier recursively subdivides the curve until each segment
// deviates from a straight chord by less than tolerance, capped at depth
// 12 to bound adversarial inputs.
func flattenCubicBezier(x0, y0, x1, y1, x2, y2, x3, y3, tolerance float32) []point {
	points := []point{{x0, y0}}
	flattenCubicBezierRecursive(x0, y0, x1, y1, x2, y2, x3, y3, tolerance, 0, &points)
	points = append(points, point{x3, y3})
	return points
}

func flattenCubicBezierRecursive(x0, y0, x1, y1, x2, y2, x3, y3, tolerance float32, depth int, out *[]point) {
	if depth > 12 {
		return
	}

	dx := x3 - x0
	dy := y3 - y0
	d1 := float32(math.Abs(float64((x1-x3)*dy - (y1-y3)*dx)))
	d2 := float32(math.Abs(float64((x2-x3)*dy - (y2-y3)*dx)))
	d := d1 + d2
	lenSq := dx*dx + dy*dy

	if d*d <= tolerance*tolerance*lenSq {
		return
	}

	x01, y01 := (x0+x1)*0.5, (y0+y1)*0.5
	x12, y12 := (x1+x2)*0.5, (y1+y2)*0.5
	x23, y23 := (x2+x3)*0.5, (y2+y3)*0.5
	x012, y012 := (x01+x12)*0.5, (y01+y12)*0.5
	x123, y123 := (x12+x23)*0.5, (y12+y23)*0.5
	x0123, y0123 := (x012+x123)*0.5, (y012+y123)*0.5

	flattenCubicBezierRecursive(x0, y0, x01, y01, x012, y012, x0123, y0123, tolerance, depth+1, out)
	*out = append(*out, point{x0123, y0123})
	flattenCubicBezierRecursive(x0123, y0123, x123, y123, x23, y23, x3, y3, tolerance, depth+1, out)
}
