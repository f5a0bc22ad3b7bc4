package ui

import (
	"fmt"

	"conway/internal/controller"
	params "conway/internal/core"
	"conway/pkg/core"
)

// KeyHelp lists the bindings shared by the GUI and terminal frontends.
var KeyHelp = []string{
	"enter/s  start or restart",
	"bksp/x   stop",
	"r        restart, new seed",
	"space    pause",
	"m        toggle mode (stopped)",
	"+ / -    grid size (stopped)",
	"d        show changed cells",
	"q        quit",
}

// StatusLines renders the panel text. While stopped it describes the run that
// the next start will create.
func StatusLines(snap params.ParameterSnapshot, state controller.State, next core.Config, paused bool) []string {
	var lines []string
	if state != controller.Active {
		lines = append(lines,
			"STOPPED",
			fmt.Sprintf("next: %v %dx%d", next.Mode, next.GridSize, next.GridSize),
			fmt.Sprintf("seed: %d", next.Seed),
			"",
		)
		return append(lines, KeyHelp...)
	}
	if paused {
		lines = append(lines, "PAUSED")
	} else {
		lines = append(lines, "RUNNING")
	}
	for _, g := range snap.Groups {
		lines = append(lines, "", "["+g.Name+"]")
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%-13s %s", p.Label, p.Value))
		}
	}
	lines = append(lines, "")
	return append(lines, KeyHelp...)
}
