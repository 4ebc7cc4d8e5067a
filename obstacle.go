package verletrope

// Epsilon replaces a null distance to an obstacle center.
const Epsilon = 1e-5

// An Obstacle is a fixed disk. All obstacles share the radius
// given by Params.ObstacleRadius.
type Obstacle struct {
	Center Vec2
}

// Obstacles is an append-only list of obstacles.
type Obstacles []Obstacle

// Centers returns a copy of the obstacle centers.
func (o Obstacles) Centers() []Vec2 {
	c := make([]Vec2, len(o))
	for i, v := range o {
		c[i] = v.Center
	}
	return c
}

// Collide pushes a node out of the disk of given center and radius,
// inflated by the radius of the node itself.
// Only Pos is moved so the push shows up as velocity on the next step.
func Collide(n *Node, center Vec2, radius, nodeRadius float64) {
	d := n.Pos.Sub(center)
	dist2 := d.Len2()
	minDist := radius + nodeRadius
	if dist2 >= minDist*minDist {
		return
	}

	dist := d.Len()
	if dist == 0 {
		// exactly at the center: push straight up
		d = Vec2{0, -Epsilon}
		n.Pos = center.Add(d)
		dist = Epsilon
	}

	n.Pos = n.Pos.Add(d.Scale((minDist - dist) / dist))
}

// CollideAll resolves the collisions of every node against every obstacle once.
func (c *Chain) CollideAll(obs Obstacles, radius, nodeRadius float64) {
	for i := range c.Nodes {
		for _, o := range obs {
			Collide(&c.Nodes[i], o.Center, radius, nodeRadius)
		}
	}
}
