//go:build !nogl
// +build !nogl

// Package opengl runs a rope simulation interactively in an OpenGL window.
package opengl

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/PrincetonUniversity/verletrope"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.1/glfw"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Width, Height int           // window size, also the default viewport
	FrameDelay    time.Duration // pause between frames
	Step          func()        // go to next step

	OnAction   func(verletrope.Action)   // called after every click, may be nil
	OnSnapshot func(verletrope.Snapshot) // called when P is pressed, may be nil
}

// number of vertices of an obstacle outline
const circleVertices = 32

// Run runs an interactive simulation in an OpenGL window.
func Run(s *verletrope.Simulation, conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const title = "Verlet rope"
	w, err := glfw.CreateWindow(conf.Width, conf.Height, title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay()
	if err != nil {
		return err
	}

	vp := defaultViewport(conf.Width, conf.Height)
	redraw := func() {
		d.draw(s, vp, conf.Width)
		w.SwapBuffers()
	}

	// handle scrolling zoom
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		xc, yc := w.GetCursorPos()
		xs, ys := w.GetSize()
		x, y := float32(xc)/float32(xs), (float32(ys)-float32(yc))/float32(ys)
		vp.zoom(x, y, yo)
		redraw()
	})

	w.SetCursorPosCallback(func(w *glfw.Window, xc, yc float64) {
		xs, ys := w.GetSize()
		s.SetPointer(vp.toWorld(xc, yc, xs, ys))
	})

	w.SetMouseButtonCallback(func(w *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		var a verletrope.Action
		switch b {
		case glfw.MouseButtonLeft:
			a = s.Click(verletrope.ButtonPrimary)
		case glfw.MouseButtonRight:
			a = s.Click(verletrope.ButtonSecondary)
		default:
			return
		}
		if conf.OnAction != nil {
			conf.OnAction(a)
		}
	})

	var quit, pause, step bool
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
		if key == glfw.KeyR && action == glfw.Press {
			vp = defaultViewport(conf.Width, conf.Height)
			redraw()
		}
		if key == glfw.KeyP && action == glfw.Press && conf.OnSnapshot != nil {
			conf.OnSnapshot(s.Snapshot())
		}
	})

	for !(quit || w.ShouldClose()) {
		if step {
			pause = true
			step = false
			conf.Step()
		}
		if !pause {
			conf.Step()
		}
		redraw()
		glfw.PollEvents()
		time.Sleep(conf.FrameDelay)
	}
	return nil
}

// display contains all the OpenGL objects required to display the simulation.
type display struct {
	prog uint32
	vao  struct {
		rope      uint32
		obstacles uint32
	}
	buf struct {
		rope      uint32 // node positions
		obstacles uint32 // obstacle outlines
	}
	uni struct {
		vp    int32 // viewport
		size  int32 // point size in pixels
		color int32
	}
	circles []verletrope.Vec2 // scratch space for obstacle outlines
}

// draw updates the OpenGL buffers and draws the rope and obstacles on screen.
func (d *display) draw(s *verletrope.Simulation, vp viewport, width int) {
	nodes := s.Chain.Positions()
	d.circles = d.circles[:0]
	for _, o := range s.Obstacles {
		d.circles = circle(d.circles, o.Center, s.Params.ObstacleRadius, circleVertices)
	}
	upload(d.buf.rope, nodes)
	upload(d.buf.obstacles, d.circles)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(d.prog)
	gl.Uniform2fv(d.uni.vp, 2, &vp[0].X)

	// obstacles
	gl.BindVertexArray(d.vao.obstacles)
	gl.Uniform4f(d.uni.color, 1, 1, 1, 1)
	for i := range s.Obstacles {
		gl.DrawArrays(gl.LINE_LOOP, int32(i*circleVertices), circleVertices)
	}

	// rope
	gl.BindVertexArray(d.vao.rope)
	gl.Uniform4f(d.uni.color, 1, 1, 1, 1)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(nodes)))

	// nodes
	scale := float32(width) / (vp[1].X - vp[0].X)
	size := 2 * float32(s.Params.NodeRadius) * scale
	if size < 2 {
		size = 2
	}
	gl.Uniform1f(d.uni.size, size)
	gl.Uniform4f(d.uni.color, 1, 0, 0, 1)
	gl.DrawArrays(gl.POINTS, 0, int32(len(nodes)))
}

// upload replaces the content of an OpenGL buffer with p.
func upload(buf uint32, p []verletrope.Vec2) {
	if len(p) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	n := len(p) * int(unsafe.Sizeof(verletrope.Vec2{}))
	gl.BufferData(gl.ARRAY_BUFFER, n, gl.Ptr(&p[0]), gl.STREAM_DRAW)
}

// newDisplay compiles shaders and initializes a display.
func newDisplay() (*display, error) {
	d := new(display)

	// compile and link shaders
	var err error
	d.prog, err = makeProg([]shader{
		{"Vertex", "rope.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "rope.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.uni.vp = gl.GetUniformLocation(d.prog, gl.Str("vp\x00"))
	d.uni.size = gl.GetUniformLocation(d.prog, gl.Str("size\x00"))
	d.uni.color = gl.GetUniformLocation(d.prog, gl.Str("color\x00"))

	// attribute location is specified in the shaders with layout(location=0)
	const pos = 0
	const stride = int32(unsafe.Sizeof(verletrope.Vec2{}))

	gl.GenVertexArrays(1, &d.vao.rope)
	gl.BindVertexArray(d.vao.rope)
	gl.GenBuffers(1, &d.buf.rope)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.rope)
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointer(pos, 2, gl.DOUBLE, false, stride, nil)

	gl.GenVertexArrays(1, &d.vao.obstacles)
	gl.BindVertexArray(d.vao.obstacles)
	gl.GenBuffers(1, &d.buf.obstacles)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.obstacles)
	gl.EnableVertexAttribArray(pos)
	gl.VertexAttribPointer(pos, 2, gl.DOUBLE, false, stride, nil)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return d, nil
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	path   string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail bool
	for _, s := range shaders {
		src := bindata[s.path] + "\x00"
		str, free := gl.Strs(src)
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error: %s ###\n\n%s\n\n", s.name, s.path, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, fmt.Errorf("verletrope: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	return prog, nil
}
