package opengl

import (
	"math"
	"testing"

	"github.com/PrincetonUniversity/verletrope"
)

func TestToWorld(t *testing.T) {
	vp := defaultViewport(800, 600)
	for _, c := range []struct {
		xc, yc float64
		want   verletrope.Vec2
	}{
		{0, 0, verletrope.Vec2{X: 0, Y: 0}},
		{800, 600, verletrope.Vec2{X: 800, Y: 600}},
		{200, 450, verletrope.Vec2{X: 200, Y: 450}},
	} {
		if got := vp.toWorld(c.xc, c.yc, 800, 600); got != c.want {
			t.Errorf("toWorld(%v, %v): got=%v want=%v", c.xc, c.yc, got, c.want)
		}
	}
}

func TestZoomKeepsCursorFixed(t *testing.T) {
	vp := defaultViewport(800, 800)
	before := vp.toWorld(200, 600, 800, 800)

	// cursor at (200, 600) from the top left is (0.25, 0.25) from the bottom left
	vp.zoom(0.25, 0.25, 3)

	after := vp.toWorld(200, 600, 800, 800)
	if math.Abs(after.X-before.X) > 1e-3 || math.Abs(after.Y-before.Y) > 1e-3 {
		t.Fatalf("point under cursor moved: got=%v want=%v", after, before)
	}
	if w := vp[1].X - vp[0].X; w <= 800 {
		t.Fatalf("scrolling up should widen the view: got width=%f", w)
	}
}

func TestCircle(t *testing.T) {
	c := verletrope.Vec2{X: 5, Y: -5}
	p := circle(nil, c, 10, 32)
	if len(p) != 32 {
		t.Fatalf("vertices: got=%d want=32", len(p))
	}
	for i, v := range p {
		if d := v.Sub(c).Len(); math.Abs(d-10) > 1e-9 {
			t.Fatalf("vertex %d: distance got=%f want=10", i, d)
		}
	}
}
