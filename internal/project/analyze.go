package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plclens/plclens/internal/rll"
)

// RungLocation names a rung within a project.
type RungLocation struct {
	Program string
	Routine string
	Rung    int
}

// Path renders the location as Program/Routine/Rung#N.
func (l RungLocation) Path() string {
	return fmt.Sprintf("%s/%s/Rung#%d", l.Program, l.Routine, l.Rung)
}

// LocatedRung is a parsed rung with its project location.
type LocatedRung struct {
	Location RungLocation
	Rung     *rll.Rung
}

// TagReferences returns the rung's tag references with location.
func (r *LocatedRung) TagReferences() []LocatedTagReference {
	var out []LocatedTagReference
	for _, ref := range r.Rung.TagReferences() {
		out = append(out, LocatedTagReference{Location: r.Location, Ref: ref})
	}
	return out
}

// HasError reports whether the rung failed to parse.
func (r *LocatedRung) HasError() bool {
	return !r.Rung.Parsed()
}

// ParseError returns the rung's failure with full location context,
// or nil when it parsed.
func (r *LocatedRung) ParseError() *rll.RungError {
	if r.Rung.Parsed() {
		return nil
	}
	return &rll.RungError{
		Err:     r.Rung.Err,
		Source:  r.Rung.Raw,
		Program: r.Location.Program,
		Routine: r.Location.Routine,
		Rung:    r.Location.Rung,
	}
}

// LocatedTagReference is one tag use with its project location.
type LocatedTagReference struct {
	Location RungLocation
	Ref      rll.TagReference
}

// CallSource distinguishes ladder from ST call sites.
type CallSource int

const (
	SourceRLL CallSource = iota
	SourceST
)

func (s CallSource) String() string {
	if s == SourceST {
		return "ST"
	}
	return "RLL"
}

// AoiReference is one call of an AOI. Rung is -1 for ST call sites.
// Program carries "AOI:<name>" when the caller is another AOI.
type AoiReference struct {
	AOI     string
	Program string
	Routine string
	Rung    int
	Source  CallSource
}

// Path renders the call site location.
func (r AoiReference) Path() string {
	if r.Source == SourceST {
		return fmt.Sprintf("%s/%s", r.Program, r.Routine)
	}
	return fmt.Sprintf("%s/%s/Rung#%d", r.Program, r.Routine, r.Rung)
}

// RoutineSummary aggregates one routine's parse results.
type RoutineSummary struct {
	Program      string
	Routine      string
	Type         string
	RungCount    int
	ParseErrors  int
	Tags         []string       // distinct base tags, sorted
	Instructions map[string]int // mnemonic counts
}

// Stats are whole-controller parse counts.
type Stats struct {
	Programs        int
	AOIs            int
	Routines        int
	Rungs           int
	RungsInPrograms int
	RungsInAOIs     int
	RungsParsed     int
	RungsFailed     int
	TagReferences   int
	UniqueTags      int
	StRoutines      int
	StInPrograms    int
	StInAOIs        int
	StParsed        int
	StFailed        int
	StDiagnostics   int
}

// ProjectAnalysis is the result of analyzing a controller: every
// parsed rung and ST routine, the tag and AOI indices, and summary
// statistics.
type ProjectAnalysis struct {
	Rungs            []LocatedRung
	StRoutines       []*StRoutine
	TagReferences    []LocatedTagReference
	Routines         []RoutineSummary
	InstructionUsage map[string]int
	AoiDefinitions   []string
	AoiUsage         map[string][]AoiReference
	Stats            Stats

	tagXref map[string][]int
}

// AnalyzeController parses every RLL rung and ST routine in the
// controller and builds the cross-reference indices. One bad routine
// yields parse-error records; the rest of the project still analyzes.
func AnalyzeController(controller *Controller) *ProjectAnalysis {
	pa := &ProjectAnalysis{
		InstructionUsage: map[string]int{},
		AoiUsage:         map[string][]AoiReference{},
		tagXref:          map[string][]int{},
	}

	for i := range controller.Programs {
		program := &controller.Programs[i]
		pa.Stats.Programs++
		for j := range program.Routines {
			pa.Stats.Routines++
			pa.analyzeRoutine(&program.Routines[j], program.Name, false)
		}
	}

	pa.Stats.AOIs = len(controller.AOIs)
	for i := range controller.AOIs {
		aoi := &controller.AOIs[i]
		pa.AoiDefinitions = append(pa.AoiDefinitions, aoi.Name)
		pa.AoiUsage[aoi.Name] = nil
		caller := "AOI:" + aoi.Name
		for j := range aoi.Routines {
			pa.analyzeRoutine(&aoi.Routines[j], caller, true)
		}
	}

	pa.indexReferences()
	pa.trackStAoiCalls()

	pa.Stats.Rungs = len(pa.Rungs)
	pa.Stats.TagReferences = len(pa.TagReferences)
	pa.Stats.UniqueTags = len(pa.tagXref)
	pa.Stats.StRoutines = len(pa.StRoutines)
	for _, st := range pa.StRoutines {
		if st.Parsed() {
			pa.Stats.StParsed++
		} else {
			pa.Stats.StFailed++
		}
		pa.Stats.StDiagnostics += len(st.Diagnostics)
	}

	return pa
}

// analyzeRoutine parses one routine per its type and records its
// summary. AOI routines skip the summary list, matching how vendor
// tools report program routines only.
func (pa *ProjectAnalysis) analyzeRoutine(routine *Routine, program string, fromAoi bool) {
	switch routine.Type {
	case "RLL":
		summary := RoutineSummary{
			Program:      program,
			Routine:      routine.Name,
			Type:         routine.Type,
			Instructions: map[string]int{},
		}
		for _, rung := range routine.Rungs {
			located := LocatedRung{
				Location: RungLocation{Program: program, Routine: routine.Name, Rung: rung.Number},
				Rung:     rll.ParseRung(rung.Text),
			}
			summary.RungCount++
			if located.HasError() {
				summary.ParseErrors++
			} else {
				for _, ref := range located.TagReferences() {
					summary.Tags = append(summary.Tags, ref.Ref.Name)
					summary.Instructions[ref.Ref.Instruction]++
				}
			}
			pa.Rungs = append(pa.Rungs, located)
			if fromAoi {
				pa.Stats.RungsInAOIs++
			} else {
				pa.Stats.RungsInPrograms++
			}
		}
		summary.Tags = dedupeSorted(summary.Tags)
		if !fromAoi {
			pa.Routines = append(pa.Routines, summary)
		}
	case "ST":
		st := parseStRoutine(routine, program)
		pa.StRoutines = append(pa.StRoutines, st)
		if fromAoi {
			pa.Stats.StInAOIs++
		} else {
			pa.Stats.StInPrograms++
			pa.Routines = append(pa.Routines, RoutineSummary{
				Program: program,
				Routine: routine.Name,
				Type:    routine.Type,
			})
		}
	default:
		// FBD, SFC, and unknown types stay opaque.
		if !fromAoi {
			pa.Routines = append(pa.Routines, RoutineSummary{
				Program: program,
				Routine: routine.Name,
				Type:    routine.Type,
			})
		}
	}
}

// indexReferences flattens every parsed rung's tag references into the
// global list, builds the tag index and instruction counts, and
// records ladder AOI calls.
func (pa *ProjectAnalysis) indexReferences() {
	defined := map[string]bool{}
	for _, name := range pa.AoiDefinitions {
		defined[name] = true
	}

	for i := range pa.Rungs {
		rung := &pa.Rungs[i]
		if rung.HasError() {
			pa.Stats.RungsFailed++
			continue
		}
		pa.Stats.RungsParsed++
		calledHere := map[string]bool{}
		for _, ref := range rung.TagReferences() {
			instruction := ref.Ref.Instruction
			if defined[instruction] && !calledHere[instruction] {
				calledHere[instruction] = true
				pa.AoiUsage[instruction] = append(pa.AoiUsage[instruction], AoiReference{
					AOI:     instruction,
					Program: rung.Location.Program,
					Routine: rung.Location.Routine,
					Rung:    rung.Location.Rung,
					Source:  SourceRLL,
				})
			}
			pa.tagXref[ref.Ref.Name] = append(pa.tagXref[ref.Ref.Name], len(pa.TagReferences))
			pa.InstructionUsage[instruction]++
			pa.TagReferences = append(pa.TagReferences, ref)
		}
	}
}

// trackStAoiCalls records AOI invocations found in ST routine bodies.
func (pa *ProjectAnalysis) trackStAoiCalls() {
	defined := map[string]bool{}
	for _, name := range pa.AoiDefinitions {
		defined[name] = true
	}

	for _, st := range pa.StRoutines {
		if st.Pou == nil {
			continue
		}
		for _, name := range stCallNames(st.Pou) {
			if !defined[name] {
				continue
			}
			pa.AoiUsage[name] = append(pa.AoiUsage[name], AoiReference{
				AOI:     name,
				Program: st.Location.Program,
				Routine: st.Location.Routine,
				Rung:    -1,
				Source:  SourceST,
			})
		}
	}
}

// ReferencesTo returns every reference to the base tag.
func (pa *ProjectAnalysis) ReferencesTo(tag string) []LocatedTagReference {
	var out []LocatedTagReference
	for _, i := range pa.tagXref[tag] {
		out = append(out, pa.TagReferences[i])
	}
	return out
}

// UniqueTags returns the distinct referenced base tags, sorted.
func (pa *ProjectAnalysis) UniqueTags() []string {
	tags := make([]string, 0, len(pa.tagXref))
	for tag := range pa.tagXref {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TopInstructions returns the n most used mnemonics, most used first;
// ties order by name.
func (pa *ProjectAnalysis) TopInstructions(n int) []InstructionCount {
	counts := make([]InstructionCount, 0, len(pa.InstructionUsage))
	for mnemonic, count := range pa.InstructionUsage {
		counts = append(counts, InstructionCount{Mnemonic: mnemonic, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Mnemonic < counts[j].Mnemonic
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// InstructionCount is one mnemonic's usage count.
type InstructionCount struct {
	Mnemonic string
	Count    int
}

// ParseErrors returns every failed rung as a located error.
func (pa *ProjectAnalysis) ParseErrors() []*rll.RungError {
	var out []*rll.RungError
	for i := range pa.Rungs {
		if err := pa.Rungs[i].ParseError(); err != nil {
			out = append(out, err)
		}
	}
	return out
}

// FormatParseErrors renders every rung parse error as a report.
func (pa *ProjectAnalysis) FormatParseErrors() []string {
	var out []string
	for _, err := range pa.ParseErrors() {
		out = append(out, err.Format())
	}
	return out
}

// Routine returns the summary for the named routine, or nil.
func (pa *ProjectAnalysis) Routine(program, routine string) *RoutineSummary {
	for i := range pa.Routines {
		if pa.Routines[i].Program == program && pa.Routines[i].Routine == routine {
			return &pa.Routines[i]
		}
	}
	return nil
}

// RoutinesInProgram returns summaries for the program's routines.
func (pa *ProjectAnalysis) RoutinesInProgram(program string) []*RoutineSummary {
	var out []*RoutineSummary
	for i := range pa.Routines {
		if pa.Routines[i].Program == program {
			out = append(out, &pa.Routines[i])
		}
	}
	return out
}

// RoutinesByType counts program routines per vendor type.
func (pa *ProjectAnalysis) RoutinesByType() map[string]int {
	out := map[string]int{}
	for _, r := range pa.Routines {
		out[r.Type]++
	}
	return out
}

// ProgramNames returns the distinct program names, sorted.
func (pa *ProjectAnalysis) ProgramNames() []string {
	var names []string
	for _, r := range pa.Routines {
		names = append(names, r.Program)
	}
	return dedupeSorted(names)
}

// StRoutine returns the named ST routine, or nil.
func (pa *ProjectAnalysis) StRoutine(program, routine string) *StRoutine {
	for _, st := range pa.StRoutines {
		if st.Location.Program == program && st.Location.Routine == routine {
			return st
		}
	}
	return nil
}

// StRoutinesWithErrors returns ST routines with parse failures or
// error-level diagnostics.
func (pa *ProjectAnalysis) StRoutinesWithErrors() []*StRoutine {
	var out []*StRoutine
	for _, st := range pa.StRoutines {
		if st.HasErrors() {
			out = append(out, st)
		}
	}
	return out
}

// AoiReferences returns every call site of the AOI.
func (pa *ProjectAnalysis) AoiReferences(name string) []AoiReference {
	return pa.AoiUsage[name]
}

// UnusedAois returns defined AOIs that nothing calls.
func (pa *ProjectAnalysis) UnusedAois() []string {
	var out []string
	for _, name := range pa.AoiDefinitions {
		if len(pa.AoiUsage[name]) == 0 {
			out = append(out, name)
		}
	}
	return out
}

// AoisByUsage returns every defined AOI with its call count, most
// called first.
func (pa *ProjectAnalysis) AoisByUsage() []InstructionCount {
	counts := make([]InstructionCount, 0, len(pa.AoiDefinitions))
	for _, name := range pa.AoiDefinitions {
		counts = append(counts, InstructionCount{Mnemonic: name, Count: len(pa.AoiUsage[name])})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Mnemonic < counts[j].Mnemonic
	})
	return counts
}

// ProgramsUsingAoi returns the programs (not AOIs) calling the AOI.
func (pa *ProjectAnalysis) ProgramsUsingAoi(name string) []string {
	var out []string
	for _, ref := range pa.AoiUsage[name] {
		if !strings.HasPrefix(ref.Program, "AOI:") {
			out = append(out, ref.Program)
		}
	}
	return dedupeSorted(out)
}

// NestedAoiCall is one AOI calling another.
type NestedAoiCall struct {
	Caller string
	Callee string
}

// NestedAoiCalls returns AOI-to-AOI calls, sorted and deduplicated.
func (pa *ProjectAnalysis) NestedAoiCalls() []NestedAoiCall {
	seen := map[NestedAoiCall]bool{}
	var out []NestedAoiCall
	for name, refs := range pa.AoiUsage {
		for _, ref := range refs {
			caller, ok := strings.CutPrefix(ref.Program, "AOI:")
			if !ok {
				continue
			}
			call := NestedAoiCall{Caller: caller, Callee: name}
			if !seen[call] {
				seen[call] = true
				out = append(out, call)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Caller != out[j].Caller {
			return out[i].Caller < out[j].Caller
		}
		return out[i].Callee < out[j].Callee
	})
	return out
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
