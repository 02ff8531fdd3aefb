// Package project analyzes a whole controller: it parses every ladder
// rung and ST routine, builds tag and AOI cross-references, and
// aggregates per-routine and per-instruction statistics.
package project

import (
	"sort"
	"strings"
)

// Controller is a parsed vendor project tree: the programs scheduled
// on the controller plus its add-on instruction definitions.
type Controller struct {
	Name     string
	Programs []Program
	AOIs     []AddOnInstruction
}

// Program is one program with its routines.
type Program struct {
	Name     string
	Routines []Routine
}

// AddOnInstruction is one AOI definition. Its routines analyze like a
// program's, under the synthetic program name "AOI:<name>".
type AddOnInstruction struct {
	Name     string
	Routines []Routine
}

// Routine is one routine body. Type is the vendor routine type: RLL,
// ST, FBD, or SFC. RLL routines carry rungs, ST routines carry
// numbered source lines.
type Routine struct {
	Name  string
	Type  string
	Rungs []RungText
	Lines []Line
}

// RungText is one rung's text with its rung number.
type RungText struct {
	Number int
	Text   string
}

// Line is one numbered ST source line.
type Line struct {
	Number int
	Text   string
}

// Source joins the routine's ST lines in line-number order.
func (r *Routine) Source() string {
	lines := make([]Line, len(r.Lines))
	copy(lines, r.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Number < lines[j].Number })

	texts := make([]string, len(lines))
	for i, ln := range lines {
		texts[i] = ln.Text
	}
	return strings.Join(texts, "\n")
}
