package main

import (
	"github.com/PrincetonUniversity/verletrope"
	"github.com/PrincetonUniversity/verletrope/hdf5"
)

// RunHDF5 runs a simulation for conf.Steps steps and records it to conf.Output.
// The last frame is also saved as a PNG if conf.Snapshot is set.
func RunHDF5(conf *Config, s *verletrope.Simulation) error {
	err := hdf5.Run(s, &hdf5.Config{
		Output:   conf.Output,
		Steps:    conf.Steps,
		Step:     s.Step,
		Datasets: hdf5.Datasets(len(s.Chain.Nodes)),
		Meta:     conf,
	})
	if err != nil {
		return err
	}
	if conf.Snapshot != "" {
		return saveSnapshot(conf, s.Snapshot())
	}
	return nil
}
