package main

import (
	"github.com/PrincetonUniversity/verletrope"
	"github.com/PrincetonUniversity/verletrope/opengl"
)

// RunOpenGL runs an interactive simulation in an OpenGL window.
func RunOpenGL(conf *Config, s *verletrope.Simulation) error {
	return opengl.Run(s, &opengl.Config{
		Width:      conf.Width,
		Height:     conf.Height,
		FrameDelay: conf.FrameDelay(),
		Step:       s.Step,
		OnAction:   logAction,
		OnSnapshot: func(snap verletrope.Snapshot) { saveSnapshot(conf, snap) },
	})
}
