package pfr

import "testing"

func TestBuildLineStrokeProducesClosedQuad(t *testing.T) {
	s := stroke{typ: strokeLine, width: 4, startX: 0, startY: 0, endX: 10, endY: 0}
	c := buildLineStroke(s)
	if len(c.Commands) != 5 {
		t.Fatalf("len(Commands) = %d, want 5 (move+3 lines+close)", len(c.Commands))
	}
	if c.Commands[0].Op != OpMoveTo {
		t.Errorf("first command = %v, want OpMoveTo", c.Commands[0].Op)
	}
	if c.Commands[len(c.Commands)-1].Op != OpClose {
		t.Errorf("last command = %v, want OpClose", c.Commands[len(c.Commands)-1].Op)
	}
	// horizontal stroke: perpendicular offset is purely vertical, so the
	// start point's two ribbon edges (commands 0 and 3) differ in Y
	if c.Commands[0].Y == c.Commands[3].Y {
		t.Errorf("expected ribbon width on the perpendicular axis")
	}
}

func TestBuildLineStrokeDegenerateZeroLength(t *testing.T) {
	s := stroke{typ: strokeLine, width: 2, startX: 5, startY: 5, endX: 5, endY: 5}
	c := buildLineStroke(s)
	if len(c.Commands) != 5 {
		t.Fatalf("degenerate stroke should still produce a small box, got %d commands", len(c.Commands))
	}
}

func TestBuildCurveStrokeProducesRibbon(t *testing.T) {
	s := stroke{
		typ:    strokeCurve,
		width:  2,
		startX: 0, startY: 0,
		control1X: 10, control1Y: 10,
		control2X: 20, control2Y: -10,
		endX: 30, endY: 0,
	}
	c := buildCurveStroke(s)
	if len(c.Commands) < 3 {
		t.Fatalf("expected a multi-point ribbon contour, got %d commands", len(c.Commands))
	}
	if c.Commands[0].Op != OpMoveTo || c.Commands[len(c.Commands)-1].Op != OpClose {
		t.Errorf("ribbon must start with MoveTo and end with Close")
	}
}

func TestFlattenCubicBezierIncludesEndpoints(t *testing.T) {
	pts := flattenCubicBezier(0, 0, 1, 1, 2, -1, 3, 0, 0.5)
	if len(pts) < 2 {
		t.Fatalf("expected at least start and end points, got %d", len(pts))
	}
	if pts[0] != (point{0, 0}) {
		t.Errorf("first point = %v, want (0,0)", pts[0])
	}
	last := pts[len(pts)-1]
	if last != (point{3, 0}) {
		t.Errorf("last point = %v, want (3,0)", last)
	}
}

func TestFlattenCubicBezierStraightLineStaysShort(t *testing.T) {
	// A perfectly straight "curve" should flatten to just its two endpoints.
	pts := flattenCubicBezier(0, 0, 5, 0, 10, 0, 15, 0, 0.5)
	if len(pts) != 2 {
		t.Errorf("len(pts) = %d, want 2 for a collinear curve", len(pts))
	}
}
