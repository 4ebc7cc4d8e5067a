// Package term runs a rope simulation in a terminal, one character cell
// covering a fixed rectangle of simulation space.
package term

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/PrincetonUniversity/verletrope"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Config holds the parameters of the terminal driver.
type Config struct {
	CellW, CellH float64 // simulation units covered by a cell
	Step         func()  // go to next step
	Sound        bool    // play a tone when an obstacle is placed

	OnAction   func(verletrope.Action)   // called after every click, may be nil
	OnSnapshot func(verletrope.Snapshot) // called when p is pressed, may be nil
}

const (
	frameRate  = 16 * time.Millisecond
	sampleRate = beep.SampleRate(44100)
)

var (
	ropeStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	nodeStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 64, 64))
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	anchorStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Run runs an interactive simulation in the terminal.
func Run(s *verletrope.Simulation, conf *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	v := newView(screen, s, conf)
	if conf.Sound {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// non-fatal, runs without sound
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer speaker.Close()
			v.tone = playTone
		}
	}

	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if !v.pause {
				conf.Step()
			}
			v.draw()
			screen.Show()
		}
	}
}

// playTone plays a short sine beep.
func playTone() {
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

// A view maps a simulation onto a terminal screen and applies input to it.
type view struct {
	screen  tcell.Screen
	sim     *verletrope.Simulation
	conf    *Config
	buttons tcell.ButtonMask // buttons held at the previous mouse event
	pause   bool
	tone    func()
}

func newView(screen tcell.Screen, s *verletrope.Simulation, conf *Config) *view {
	return &view{screen: screen, sim: s, conf: conf}
}

// toWorld returns the simulation coordinates of the center of cell (x, y).
func (v *view) toWorld(x, y int) verletrope.Vec2 {
	return verletrope.Vec2{
		X: (float64(x) + 0.5) * v.conf.CellW,
		Y: (float64(y) + 0.5) * v.conf.CellH,
	}
}

// toCell returns the cell containing p.
func (v *view) toCell(p verletrope.Vec2) (x, y int) {
	return int(math.Floor(p.X / v.conf.CellW)), int(math.Floor(p.Y / v.conf.CellH))
}

// handle applies an input event. It returns false when the user wants to quit.
func (v *view) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			v.pause = !v.pause
		case ev.Rune() == 'p':
			if v.conf.OnSnapshot != nil {
				v.conf.OnSnapshot(v.sim.Snapshot())
			}
		}

	case *tcell.EventMouse:
		v.sim.SetPointer(v.toWorld(ev.Position()))

		b := ev.Buttons()
		pressed := b &^ v.buttons
		v.buttons = b
		if pressed&tcell.ButtonPrimary != 0 {
			v.click(verletrope.ButtonPrimary)
		}
		if pressed&tcell.ButtonSecondary != 0 {
			v.click(verletrope.ButtonSecondary)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *view) click(b verletrope.Button) {
	a := v.sim.Click(b)
	if a == verletrope.ActionObstacle && v.tone != nil {
		v.tone()
	}
	if v.conf.OnAction != nil {
		v.conf.OnAction(a)
	}
}

// draw renders the current state of the simulation. Cells outside the
// screen are clipped by tcell.
func (v *view) draw() {
	v.screen.Clear()
	s := v.sim

	for _, o := range s.Obstacles {
		v.drawCircle(o.Center, s.Params.ObstacleRadius)
	}

	nodes := s.Chain.Nodes
	for i := 1; i < len(nodes); i++ {
		v.drawLine(nodes[i-1].Pos, nodes[i].Pos)
	}
	for _, n := range nodes {
		x, y := v.toCell(n.Pos)
		v.screen.SetContent(x, y, '•', nil, nodeStyle)
	}
	x, y := v.toCell(s.Anchor.Active())
	v.screen.SetContent(x, y, '+', nil, anchorStyle)

	mode := "pinned"
	if s.Anchor.ToPointer {
		mode = "following"
	}
	hud := fmt.Sprintf("frame %d  %s  obstacles %d  stretch %.4f", s.Frame, mode, len(s.Obstacles), s.Chain.Stretch())
	if v.pause {
		hud += "  [paused]"
	}
	v.drawString(0, 0, hud)
}

// drawLine rasterizes a segment with one mark per cell crossed.
func (v *view) drawLine(a, b verletrope.Vec2) {
	x0, y0 := v.toCell(a)
	x1, y1 := v.toCell(b)
	n := max(abs(x1-x0), abs(y1-y0))
	for k := 0; k <= n; k++ {
		t := 0.0
		if n > 0 {
			t = float64(k) / float64(n)
		}
		p := a.Add(b.Sub(a).Scale(t))
		x, y := v.toCell(p)
		v.screen.SetContent(x, y, '·', nil, ropeStyle)
	}
}

// drawCircle draws the outline of a circle.
func (v *view) drawCircle(c verletrope.Vec2, r float64) {
	// enough samples to hit every cell on the outline
	n := int(2*math.Pi*r/math.Min(v.conf.CellW, v.conf.CellH)) + 8
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		x, y := v.toCell(verletrope.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
		v.screen.SetContent(x, y, 'o', nil, obstacleStyle)
	}
}

func (v *view) drawString(x, y int, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, hudStyle)
		x++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
