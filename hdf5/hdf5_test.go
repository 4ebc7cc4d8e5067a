package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/PrincetonUniversity/verletrope"
	"gonum.org/v1/hdf5"
)

type meta struct {
	Segments int
	Gravity  float64
	Frontend string
	Sound    bool         // skipped
	Origin   [2]float64   // skipped
	Points   [][2]float64 // skipped
}

func TestRun(t *testing.T) {
	sc := verletrope.DefaultScene()
	sc.Segments = 10
	sc.Obstacles = []verletrope.Vec2{{X: 100, Y: 300}, {X: 150, Y: 320}}
	s := verletrope.New(sc)

	const steps = 5
	path := filepath.Join(t.TempDir(), "out", "rope.h5")
	err := Run(s, &Config{
		Output:   path,
		Steps:    steps,
		Step:     s.Step,
		Datasets: Datasets(len(s.Chain.Nodes)),
		Meta:     &meta{Segments: 10, Gravity: 9.8, Frontend: "opengl"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Frame != steps {
		t.Fatalf("frames: got=%d want=%d", s.Frame, steps)
	}

	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	for _, c := range []struct {
		name string
		want []uint
	}{
		{"nodes", []uint{steps, 10}},
		{"anchor", []uint{steps}},
		{"stretch", []uint{steps}},
		{"obstacles", []uint{2}},
	} {
		dset, err := f.OpenDataset(c.name)
		if err != nil {
			t.Fatalf("open dataset %s: %v", c.name, err)
		}
		space := dset.Space()
		dims, _, err := space.SimpleExtentDims()
		if err != nil {
			t.Fatalf("dims of %s: %v", c.name, err)
		}
		if len(dims) != len(c.want) {
			t.Fatalf("dims of %s: got=%v want=%v", c.name, dims, c.want)
		}
		for i := range dims {
			if dims[i] != c.want[i] {
				t.Fatalf("dims of %s: got=%v want=%v", c.name, dims, c.want)
			}
		}
		space.Close()
		dset.Close()
	}

	// the first row is recorded before the first step
	dset, err := f.OpenDataset("nodes")
	if err != nil {
		t.Fatal(err)
	}
	defer dset.Close()
	nodes := make([]verletrope.Vec2, steps*10)
	if err := dset.Read(&nodes); err != nil {
		t.Fatalf("read nodes: %v", err)
	}
	if nodes[1] != (verletrope.Vec2{X: 100, Y: 200}) {
		t.Fatalf("initial node 1: got=%v want=(100,200)", nodes[1])
	}

	cfg, err := f.OpenDataset("config")
	if err != nil {
		t.Fatal(err)
	}
	defer cfg.Close()
	for _, name := range []string{"Time", "Segments", "Gravity", "Frontend"} {
		attr, err := cfg.OpenAttribute(name)
		if err != nil {
			t.Errorf("missing config attribute %s: %v", name, err)
			continue
		}
		attr.Close()
	}
	for _, name := range []string{"Sound", "Origin"} {
		if attr, err := cfg.OpenAttribute(name); err == nil {
			attr.Close()
			t.Errorf("non scalar field %s saved as an attribute", name)
		}
	}
}

func TestRunRejectsBadMeta(t *testing.T) {
	s := verletrope.New(verletrope.DefaultScene())
	err := Run(s, &Config{
		Output: filepath.Join(t.TempDir(), "rope.h5"),
		Steps:  1,
		Step:   s.Step,
		Meta:   meta{},
	})
	if err == nil {
		t.Fatal("expected an error for a non pointer Meta")
	}
}
