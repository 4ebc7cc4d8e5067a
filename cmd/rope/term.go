package main

import (
	"github.com/PrincetonUniversity/verletrope"
	"github.com/PrincetonUniversity/verletrope/term"
)

// RunTerminal runs an interactive simulation in the terminal.
func RunTerminal(conf *Config, s *verletrope.Simulation) error {
	return term.Run(s, &term.Config{
		CellW:      conf.CellW,
		CellH:      conf.CellH,
		Step:       s.Step,
		Sound:      conf.Sound,
		OnAction:   logAction,
		OnSnapshot: func(snap verletrope.Snapshot) { saveSnapshot(conf, snap) },
	})
}
