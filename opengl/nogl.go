//go:build nogl
// +build nogl

// Package opengl runs a rope simulation interactively in an OpenGL window.
package opengl

import (
	"fmt"
	"os"
	"time"

	"github.com/PrincetonUniversity/verletrope"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Width, Height int
	FrameDelay    time.Duration
	Step          func()

	OnAction   func(verletrope.Action)
	OnSnapshot func(verletrope.Snapshot)
}

// Run returns an error explaining that OpenGL support is disabled.
func Run(s *verletrope.Simulation, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
