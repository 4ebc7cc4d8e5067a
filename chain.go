package verletrope

import "math"

// A Node is a point mass integrated with the Verlet scheme.
// Its velocity is implicit: Pos - Old.
type Node struct {
	Pos Vec2 // current position
	Old Vec2 // position at the end of the previous integration step
}

// NewNode returns a node at rest at position p.
func NewNode(p Vec2) Node {
	return Node{Pos: p, Old: p}
}

// Vel returns the implicit velocity of the node in units per step.
func (n *Node) Vel() Vec2 {
	return n.Pos.Sub(n.Old)
}

// Integrate advances a node by one time step under gravity.
// The velocity is either clamped to p.MaxSpeed or damped, never both.
func Integrate(n *Node, p Params) {
	v := n.Pos.Sub(n.Old)
	v.Y += p.Gravity * p.Dt * p.Dt

	if speed := v.Len(); speed > p.MaxSpeed {
		v = v.Scale(p.MaxSpeed / speed)
	} else {
		v = v.Scale(p.Damping)
	}

	n.Old = n.Pos
	n.Pos = n.Pos.Add(v)
}

// A Layout gives the initial position of the nodes of a chain:
// node i starts at Origin + i*Spacing.
type Layout struct {
	Origin  Vec2
	Spacing Vec2
}

// A Chain is an ordered sequence of nodes linked by distance constraints.
// Node 0 is the one pinned to the anchor.
type Chain struct {
	Nodes    []Node
	RestDist float64 // target distance between consecutive nodes
}

// NewChain returns a chain of the given number of nodes at rest, laid out
// according to l, whose total length at rest is length.
func NewChain(segments int, length float64, l Layout) Chain {
	if segments < 0 {
		segments = 0
	}
	c := Chain{Nodes: make([]Node, segments)}
	if segments > 1 {
		c.RestDist = length / float64(segments-1)
	}
	for i := range c.Nodes {
		c.Nodes[i] = NewNode(l.Origin.Add(l.Spacing.Scale(float64(i))))
	}
	return c
}

// Integrate integrates every node of the chain once.
func (c *Chain) Integrate(p Params) {
	for i := range c.Nodes {
		Integrate(&c.Nodes[i], p)
	}
}

// Relax runs a single under-relaxed pass over the distance constraints,
// then pins the first node to the anchor with no residual velocity.
// It only moves each pair halfway so it must be called repeatedly.
func (c *Chain) Relax(anchor Vec2) {
	for i := 1; i < len(c.Nodes); i++ {
		prev, curr := &c.Nodes[i-1].Pos, &c.Nodes[i].Pos

		d := curr.Sub(*prev)
		mag := d.Len()
		if mag == 0 {
			// no direction to correct along
			continue
		}

		corr := d.Scale(0.5 * (c.RestDist - mag) / mag)
		*curr = curr.Add(corr)
		*prev = prev.Sub(corr)
	}

	if len(c.Nodes) > 0 {
		c.Nodes[0].Pos = anchor
		c.Nodes[0].Old = anchor
	}
}

// Stretch returns the mean relative deviation of the segment lengths
// from the rest distance. It is 0 for a chain exactly at rest.
func (c *Chain) Stretch() float64 {
	if len(c.Nodes) < 2 || c.RestDist == 0 {
		return 0
	}
	var sum float64
	for i := 1; i < len(c.Nodes); i++ {
		l := c.Nodes[i].Pos.Sub(c.Nodes[i-1].Pos).Len()
		sum += math.Abs(l-c.RestDist) / c.RestDist
	}
	return sum / float64(len(c.Nodes)-1)
}

// Positions returns a copy of the node positions.
func (c *Chain) Positions() []Vec2 {
	p := make([]Vec2, len(c.Nodes))
	for i, n := range c.Nodes {
		p[i] = n.Pos
	}
	return p
}
