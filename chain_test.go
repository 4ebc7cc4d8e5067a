package verletrope

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestIntegrateClampsSpeed(t *testing.T) {
	p := DefaultParams()
	n := Node{Pos: Vec2{30, 40}, Old: Vec2{0, 0}}
	want := Vec2{30, 40 + p.Gravity*p.Dt*p.Dt} // direction before clamping

	Integrate(&n, p)

	v := n.Vel()
	if got := v.Len(); !near(got, p.MaxSpeed, tol) {
		t.Fatalf("speed after clamp: got=%f want=%f", got, p.MaxSpeed)
	}
	if cross := v.X*want.Y - v.Y*want.X; !near(cross, 0, 1e-9) {
		t.Fatalf("clamp changed direction: v=%v want direction %v", v, want)
	}
	if n.Old != (Vec2{30, 40}) {
		t.Fatalf("old position: got=%v want=%v", n.Old, Vec2{30, 40})
	}
}

func TestIntegrateDamps(t *testing.T) {
	p := DefaultParams()
	n := Node{Pos: Vec2{3, 4}, Old: Vec2{0, 0}}

	Integrate(&n, p)

	want := Vec2{3 * p.Damping, (4 + 0.098) * p.Damping}
	v := n.Vel()
	if !near(v.X, want.X, tol) || !near(v.Y, want.Y, tol) {
		t.Fatalf("damped velocity: got=%v want=%v", v, want)
	}
	if n.Old != (Vec2{3, 4}) {
		t.Fatalf("old position: got=%v want=%v", n.Old, Vec2{3, 4})
	}
}

func TestIntegrateFallsFromRest(t *testing.T) {
	p := DefaultParams()
	n := NewNode(Vec2{10, 10})

	Integrate(&n, p)

	if n.Pos.X != 10 {
		t.Fatalf("x moved without horizontal velocity: got=%f", n.Pos.X)
	}
	if want := 10 + 0.098*p.Damping; !near(n.Pos.Y, want, tol) {
		t.Fatalf("y after one step: got=%f want=%f", n.Pos.Y, want)
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(5, 40, Layout{Origin: Vec2{1, 2}, Spacing: Vec2{0, 3}})
	if len(c.Nodes) != 5 {
		t.Fatalf("nodes: got=%d want=5", len(c.Nodes))
	}
	if c.RestDist != 10 {
		t.Fatalf("rest distance: got=%f want=10", c.RestDist)
	}
	for i, n := range c.Nodes {
		want := Vec2{1, 2 + 3*float64(i)}
		if n.Pos != want || n.Old != want {
			t.Fatalf("node %d: got=%+v want pos=old=%v", i, n, want)
		}
	}

	// 400 / 99 must not be truncated
	c = NewChain(100, 400, Layout{})
	if !near(c.RestDist, 400.0/99.0, tol) {
		t.Fatalf("rest distance: got=%f want=%f", c.RestDist, 400.0/99.0)
	}
}

func TestRelaxConvergesMonotonically(t *testing.T) {
	for _, start := range []float64{100, 1} {
		c := Chain{
			Nodes:    []Node{NewNode(Vec2{0, 0}), NewNode(Vec2{start, 0})},
			RestDist: 10,
		}
		prev := start - c.RestDist
		for k := 0; k < 30; k++ {
			c.Relax(Vec2{0, 0})
			err := c.Nodes[1].Pos.X - c.RestDist
			if math.Abs(err) >= math.Abs(prev) {
				t.Fatalf("start=%f iter=%d: error did not decrease: got=%g prev=%g", start, k, err, prev)
			}
			if err*prev < 0 {
				t.Fatalf("start=%f iter=%d: overshoot: got=%g prev=%g", start, k, err, prev)
			}
			prev = err
		}
	}
}

func TestRelaxPinsAnchor(t *testing.T) {
	c := NewChain(10, 90, Layout{Origin: Vec2{5, 5}, Spacing: Vec2{7, 3}})
	c.Nodes[0].Old = Vec2{-50, 80}
	anchor := Vec2{123.5, -4.25}

	for k := 0; k < 3; k++ {
		c.Relax(anchor)
		if c.Nodes[0].Pos != anchor || c.Nodes[0].Old != anchor {
			t.Fatalf("node 0 after relax: got=%+v want pos=old=%v", c.Nodes[0], anchor)
		}
	}
}

func TestRelaxSkipsCoincidentNodes(t *testing.T) {
	c := Chain{
		Nodes: []Node{
			NewNode(Vec2{0, 0}),
			NewNode(Vec2{0, 0}), // same as previous
			NewNode(Vec2{0, 30}),
		},
		RestDist: 10,
	}

	c.Relax(Vec2{0, 0})

	for i, n := range c.Nodes {
		if math.IsNaN(n.Pos.X) || math.IsNaN(n.Pos.Y) {
			t.Fatalf("node %d is NaN: %+v", i, n)
		}
	}
	// the degenerate pair is left alone, the next one still gets corrected
	if c.Nodes[1].Pos != (Vec2{0, 10}) || c.Nodes[2].Pos != (Vec2{0, 20}) {
		t.Fatalf("after relax: got=%v, %v want=(0,10), (0,20)", c.Nodes[1].Pos, c.Nodes[2].Pos)
	}
}

func TestRelaxShortChains(t *testing.T) {
	var empty Chain
	empty.Relax(Vec2{1, 1}) // must not panic

	one := NewChain(1, 100, Layout{Origin: Vec2{4, 4}})
	if one.RestDist != 0 {
		t.Fatalf("rest distance of a single node: got=%f want=0", one.RestDist)
	}
	one.Relax(Vec2{1, 1})
	if one.Nodes[0].Pos != (Vec2{1, 1}) {
		t.Fatalf("single node not pinned: got=%v", one.Nodes[0].Pos)
	}
}

func TestStretch(t *testing.T) {
	c := NewChain(4, 30, Layout{Spacing: Vec2{10, 0}})
	if got := c.Stretch(); got != 0 {
		t.Fatalf("stretch at rest: got=%f want=0", got)
	}
	c = NewChain(4, 30, Layout{Spacing: Vec2{0, 20}})
	if got := c.Stretch(); !near(got, 1, tol) {
		t.Fatalf("stretch at twice the rest length: got=%f want=1", got)
	}
}
