// Package verletrope simulates a rope as a chain of point masses.
//
// Nodes are integrated once per frame with a Verlet scheme under gravity,
// then the distance constraints between consecutive nodes and the collisions
// against circular obstacles are relaxed a fixed number of times.
// The first node is pinned to an anchor that either follows the pointer
// or stays at a fixed point.
//
// A Simulation owns all the state. Front-ends write inputs into it
// (pointer position, clicks, obstacles) and read a Snapshot once per frame.
package verletrope

// Params contains the constants of the solver.
type Params struct {
	Gravity    float64 // vertical acceleration in units per time²
	Dt         float64 // duration of a step
	Damping    float64 // velocity factor applied when under MaxSpeed
	MaxSpeed   float64 // speed cap in units per step
	Iterations int     // relaxation passes per step

	ObstacleRadius float64 // radius shared by all obstacles
	NodeRadius     float64 // margin added to obstacles for the node itself
}

// DefaultParams returns the standard solver constants.
func DefaultParams() Params {
	return Params{
		Gravity:        9.8,
		Dt:             0.1,
		Damping:        0.9999,
		MaxSpeed:       20,
		Iterations:     64,
		ObstacleRadius: 10,
		NodeRadius:     1,
	}
}

// An Anchor determines where the first node of the chain is pinned.
type Anchor struct {
	ToPointer bool // follow the pointer?
	Point     Vec2 // fixed anchor, used when ToPointer is false
	Pointer   Vec2 // last known pointer position
}

// Active returns the point the chain is currently pinned to.
func (a Anchor) Active() Vec2 {
	if a.ToPointer {
		return a.Pointer
	}
	return a.Point
}

// A Scene describes the initial state of a simulation.
type Scene struct {
	Segments   int     // number of nodes
	RopeLength float64 // length of the rope at rest
	Layout     Layout  // initial position of the nodes
	Params     Params
	Anchor     Anchor
	Obstacles  []Vec2 // initial obstacle centers
}

// DefaultScene returns a 100 node rope of length 400 following the pointer.
func DefaultScene() Scene {
	return Scene{
		Segments:   100,
		RopeLength: 400,
		Layout: Layout{
			Origin:  Vec2{100, 0},
			Spacing: Vec2{0, 200},
		},
		Params: DefaultParams(),
		Anchor: Anchor{ToPointer: true},
	}
}

// A Simulation contains all the state and parameters of a simulation.
type Simulation struct {
	Chain     Chain
	Obstacles Obstacles
	Anchor    Anchor
	Params    Params
	Frame     int // number of completed steps
}

// New returns a simulation initialized from sc.
func New(sc Scene) *Simulation {
	s := &Simulation{
		Chain:  NewChain(sc.Segments, sc.RopeLength, sc.Layout),
		Anchor: sc.Anchor,
		Params: sc.Params,
	}
	for _, p := range sc.Obstacles {
		s.AddObstacle(p)
	}
	return s
}

// Step runs a single simulation step: one integration of every node
// followed by Params.Iterations passes of constraints then collisions.
func (s *Simulation) Step() {
	s.Chain.Integrate(s.Params)
	for k := 0; k < s.Params.Iterations; k++ {
		s.Chain.Relax(s.Anchor.Active())
		s.Chain.CollideAll(s.Obstacles, s.Params.ObstacleRadius, s.Params.NodeRadius)
	}
	s.Frame++
}

// SetAnchorMode selects whether the chain follows the pointer.
func (s *Simulation) SetAnchorMode(toPointer bool) {
	s.Anchor.ToPointer = toPointer
}

// SetAnchorPoint sets the fixed anchor.
func (s *Simulation) SetAnchorPoint(p Vec2) {
	s.Anchor.Point = p
}

// SetPointer records the pointer position.
func (s *Simulation) SetPointer(p Vec2) {
	s.Anchor.Pointer = p
}

// AddObstacle appends an obstacle centered on p.
func (s *Simulation) AddObstacle(p Vec2) {
	s.Obstacles = append(s.Obstacles, Obstacle{Center: p})
}

// A Button is a pointer button as seen by the simulation.
type Button int

const (
	ButtonPrimary   Button = iota // usually left
	ButtonSecondary               // usually right
)

// An Action reports the effect of a click.
type Action int

const (
	ActionNone Action = iota
	ActionFollow
	ActionPin
	ActionObstacle
)

// String returns the name of an action.
func (a Action) String() string {
	switch a {
	case ActionFollow:
		return "follow"
	case ActionPin:
		return "pin"
	case ActionObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// Click applies a button press at the current pointer position.
// The primary button makes the chain follow the pointer. The secondary
// button pins the chain where the pointer is, or, when it is already
// pinned, drops an obstacle under the pointer.
func (s *Simulation) Click(b Button) Action {
	switch {
	case b == ButtonPrimary:
		s.SetAnchorMode(true)
		return ActionFollow
	case b == ButtonSecondary && s.Anchor.ToPointer:
		s.SetAnchorMode(false)
		s.SetAnchorPoint(s.Anchor.Pointer)
		return ActionPin
	case b == ButtonSecondary:
		s.AddObstacle(s.Anchor.Pointer)
		return ActionObstacle
	}
	return ActionNone
}

// A Snapshot is a copy of the state a front-end needs to draw a frame.
type Snapshot struct {
	Frame          int
	Nodes          []Vec2
	Obstacles      []Vec2
	ObstacleRadius float64
	NodeRadius     float64
	Anchor         Vec2
	ToPointer      bool
	Stretch        float64
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame:          s.Frame,
		Nodes:          s.Chain.Positions(),
		Obstacles:      s.Obstacles.Centers(),
		ObstacleRadius: s.Params.ObstacleRadius,
		NodeRadius:     s.Params.NodeRadius,
		Anchor:         s.Anchor.Active(),
		ToPointer:      s.Anchor.ToPointer,
		Stretch:        s.Chain.Stretch(),
	}
}
