package opengl

import (
	"math"

	"github.com/PrincetonUniversity/verletrope"
)

// A viewport is a rectangle delimiting the area of simulation space shown on screen.
// The first point is the bottom left corner, the second point is the top right corner.
// Simulation space has y pointing down, so the first point has the larger Y.
type viewport [2]struct{ X, Y float32 }

// defaultViewport shows the rectangle (0, 0)-(w, h) of simulation space.
func defaultViewport(w, h int) viewport {
	return viewport{{0, float32(h)}, {float32(w), 0}}
}

// toWorld maps a cursor position in window coordinates
// (origin at the top left, size xs × ys) to simulation space.
func (vp viewport) toWorld(xc, yc float64, xs, ys int) verletrope.Vec2 {
	x, y := float32(xc)/float32(xs), float32(yc)/float32(ys)
	return verletrope.Vec2{
		X: float64(vp[0].X + x*(vp[1].X-vp[0].X)),
		Y: float64(vp[1].Y + y*(vp[0].Y-vp[1].Y)),
	}
}

// zoom scales the viewport around the cursor. x and y are the cursor
// coordinates normalized to [0, 1] from the bottom left corner.
func (vp *viewport) zoom(x, y float32, amount float64) {
	dx, dy := vp[1].X-vp[0].X, vp[1].Y-vp[0].Y
	z := 0.05 * float32(amount)
	vp[0].X += z * -(x * dx)
	vp[0].Y += z * -(y * dy)
	vp[1].X += z * (1 - x) * dx
	vp[1].Y += z * (1 - y) * dy
}

// circle appends to dst the n vertices of a regular polygon approximating
// a circle of radius r centered on c.
func circle(dst []verletrope.Vec2, c verletrope.Vec2, r float64, n int) []verletrope.Vec2 {
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		dst = append(dst, verletrope.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return dst
}
