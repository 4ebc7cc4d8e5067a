// Command rope runs a Verlet rope simulation.
//
// Usage
//
// The rope command takes one optional argument:
//
//	rope [config_file]
//
// It is the path to a TOML config file. Variables from a .env file in the
// working directory or from the environment override a few parameters:
// ROPE_OUTPUT, ROPE_FRONTEND, ROPE_SNAPSHOT and ROPE_LOG.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/PrincetonUniversity/verletrope"
	"github.com/PrincetonUniversity/verletrope/snapshot"
	"github.com/joho/godotenv"
)

const usage = `Usage: rope [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		c := *DefaultConf
		conf = &c
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	// a missing .env file is fine
	_ = godotenv.Load()
	applyEnv(conf, os.Getenv)

	if err := conf.Validate(); err != nil {
		Fatal(err)
	}

	logFile, err := setupLog(conf)
	if err != nil {
		Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// setup simulation
	sim := verletrope.New(conf.Scene())
	log.Printf("%d nodes, rest distance %g, %d obstacles", len(sim.Chain.Nodes), sim.Chain.RestDist, len(sim.Obstacles))

	// run interactively or not depending on config
	switch {
	case conf.Output != "":
		err = RunHDF5(conf, sim)
	case conf.Frontend == "terminal":
		err = RunTerminal(conf, sim)
	default:
		err = RunOpenGL(conf, sim)
	}
	if err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// setupLog directs the standard logger to the log file if any.
// The terminal front-end owns the screen, so it logs nowhere by default.
func setupLog(conf *Config) (io.Closer, error) {
	log.SetPrefix("rope: ")
	switch {
	case conf.Log != "":
		f, err := os.OpenFile(conf.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	case conf.Output == "" && conf.Frontend == "terminal":
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil, nil
}

// snapshotPath returns where to save the PNG of a given frame.
func snapshotPath(conf *Config, frame int) string {
	if conf.Snapshot != "" {
		return conf.Snapshot
	}
	return fmt.Sprintf("rope-%06d.png", frame)
}

// saveSnapshot writes a PNG of snap and logs the outcome.
func saveSnapshot(conf *Config, snap verletrope.Snapshot) error {
	path := snapshotPath(conf, snap.Frame)
	if err := snapshot.SavePNG(path, snap, conf.Width, conf.Height); err != nil {
		log.Printf("snapshot: %v", err)
		return err
	}
	log.Printf("frame %d saved to %s", snap.Frame, path)
	return nil
}

// logAction records the effect of a click.
func logAction(a verletrope.Action) {
	log.Printf("click: %s", a)
}
