package project

import (
	"strings"
	"testing"
)

func rllRoutine(name string, rungs ...string) Routine {
	r := Routine{Name: name, Type: "RLL"}
	for i, text := range rungs {
		r.Rungs = append(r.Rungs, RungText{Number: i, Text: text})
	}
	return r
}

func stRoutine(name string, lines ...string) Routine {
	r := Routine{Name: name, Type: "ST"}
	for i, text := range lines {
		r.Lines = append(r.Lines, Line{Number: i, Text: text})
	}
	return r
}

func TestAnalyzeRllProgram(t *testing.T) {
	controller := &Controller{
		Name: "Press01",
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{
				rllRoutine("MainRoutine",
					"XIC(Start)OTE(Motor);",
					"MOV(Counter,Dest);"),
			},
		}},
	}
	pa := AnalyzeController(controller)

	if pa.Stats.Programs != 1 || pa.Stats.Routines != 1 {
		t.Errorf("program/routine counts = %+v", pa.Stats)
	}
	if pa.Stats.Rungs != 2 || pa.Stats.RungsParsed != 2 || pa.Stats.RungsFailed != 0 {
		t.Errorf("rung counts = %+v", pa.Stats)
	}

	tags := pa.UniqueTags()
	want := []string{"Counter", "Dest", "Motor", "Start"}
	if len(tags) != len(want) {
		t.Fatalf("unique tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("unique tags = %v, want %v", tags, want)
		}
	}

	// MOV has two operands, so it contributes two references.
	if pa.InstructionUsage["MOV"] != 2 || pa.InstructionUsage["XIC"] != 1 {
		t.Errorf("instruction usage = %v", pa.InstructionUsage)
	}
	top := pa.TopInstructions(1)
	if len(top) != 1 || top[0].Mnemonic != "MOV" || top[0].Count != 2 {
		t.Errorf("top instructions = %+v", top)
	}

	refs := pa.ReferencesTo("Start")
	if len(refs) != 1 {
		t.Fatalf("references to Start = %+v", refs)
	}
	if refs[0].Location.Path() != "MainProgram/MainRoutine/Rung#0" {
		t.Errorf("Start location = %q", refs[0].Location.Path())
	}
	if refs[0].Ref.Instruction != "XIC" {
		t.Errorf("Start instruction = %q", refs[0].Ref.Instruction)
	}

	summary := pa.Routine("MainProgram", "MainRoutine")
	if summary == nil {
		t.Fatal("routine summary missing")
	}
	if summary.RungCount != 2 || summary.ParseErrors != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Tags) != 4 {
		t.Errorf("summary tags = %v", summary.Tags)
	}
	if summary.Instructions["MOV"] != 2 {
		t.Errorf("summary instructions = %v", summary.Instructions)
	}
}

func TestBadRungDoesNotStopAnalysis(t *testing.T) {
	controller := &Controller{
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{
				rllRoutine("MainRoutine",
					"XIC(Start)OTE(Motor);",
					"XIC(Broken",
					"OTE(Lamp);"),
			},
		}},
	}
	pa := AnalyzeController(controller)

	if pa.Stats.RungsParsed != 2 || pa.Stats.RungsFailed != 1 {
		t.Errorf("rung counts = %+v", pa.Stats)
	}

	errs := pa.ParseErrors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(errs))
	}
	if errs[0].Path() != "MainProgram/MainRoutine/Rung#1" {
		t.Errorf("error path = %q", errs[0].Path())
	}
	report := errs[0].Format()
	if !strings.Contains(report, "in MainProgram/MainRoutine/Rung#1") {
		t.Errorf("report missing location header: %q", report)
	}
	if !strings.Contains(report, "missing rung terminator") {
		t.Errorf("report missing message: %q", report)
	}

	// Tags from the healthy rungs still index.
	if len(pa.ReferencesTo("Lamp")) != 1 {
		t.Error("good rung after bad one was not indexed")
	}
	summary := pa.Routine("MainProgram", "MainRoutine")
	if summary.ParseErrors != 1 || summary.RungCount != 3 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestStRoutineWrapping(t *testing.T) {
	controller := &Controller{
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{{
				Name: "Logic",
				Type: "ST",
				Lines: []Line{
					{Number: 1, Text: "y := x + 2;"},
					{Number: 0, Text: "x := 1;"},
				},
			}},
		}},
	}
	pa := AnalyzeController(controller)

	st := pa.StRoutine("MainProgram", "Logic")
	if st == nil {
		t.Fatal("ST routine missing")
	}
	if st.Source != "x := 1;\ny := x + 2;" {
		t.Errorf("source joined out of order: %q", st.Source)
	}
	if !st.Parsed() {
		t.Fatalf("wrapped routine should parse: %+v", st.ParseErrors)
	}
	if st.Location.Path() != "MainProgram/Logic" {
		t.Errorf("location = %q", st.Location.Path())
	}
	// The synthetic wrapper declares nothing, so x and y are undefined.
	if len(st.Errors()) == 0 {
		t.Error("expected undefined-identifier diagnostics")
	}
	if pa.Stats.StRoutines != 1 || pa.Stats.StParsed != 1 || pa.Stats.StInPrograms != 1 {
		t.Errorf("ST stats = %+v", pa.Stats)
	}
	if pa.Stats.StDiagnostics == 0 {
		t.Error("ST diagnostics not counted")
	}
}

func TestStParseFailureIsContained(t *testing.T) {
	controller := &Controller{
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{
				stRoutine("Broken", "IF THEN END_IF"),
				rllRoutine("MainRoutine", "OTE(Out);"),
			},
		}},
	}
	pa := AnalyzeController(controller)

	if pa.Stats.StFailed != 1 {
		t.Errorf("ST stats = %+v", pa.Stats)
	}
	withErrors := pa.StRoutinesWithErrors()
	if len(withErrors) != 1 || withErrors[0].Location.Routine != "Broken" {
		t.Errorf("routines with errors = %+v", withErrors)
	}
	if len(pa.ReferencesTo("Out")) != 1 {
		t.Error("ladder routine should still analyze")
	}
}

func TestAoiUsage(t *testing.T) {
	controller := &Controller{
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{
				rllRoutine("MainRoutine", "XIC(Start)A_Uniform_RNG(URNG,SeedIn);"),
				stRoutine("Setup", "A_Uniform_RNG(inst);"),
			},
		}},
		AOIs: []AddOnInstruction{
			{
				Name: "A_Uniform_RNG",
				Routines: []Routine{
					rllRoutine("Logic", "MUL(Seed,A,Se);"),
				},
			},
			{Name: "UnusedAOI"},
			{
				Name: "Outer",
				Routines: []Routine{
					rllRoutine("Logic", "A_Uniform_RNG(Nested);"),
				},
			},
		},
	}
	pa := AnalyzeController(controller)

	if pa.Stats.AOIs != 3 {
		t.Errorf("AOI count = %d", pa.Stats.AOIs)
	}
	if pa.Stats.RungsInAOIs != 2 || pa.Stats.RungsInPrograms != 1 {
		t.Errorf("rung split = %+v", pa.Stats)
	}

	refs := pa.AoiReferences("A_Uniform_RNG")
	if len(refs) != 3 {
		t.Fatalf("expected 3 AOI references, got %+v", refs)
	}
	var rllCalls, stCalls int
	for _, ref := range refs {
		switch ref.Source {
		case SourceRLL:
			rllCalls++
		case SourceST:
			stCalls++
			if ref.Rung != -1 {
				t.Errorf("ST call site carries rung %d", ref.Rung)
			}
		}
	}
	if rllCalls != 2 || stCalls != 1 {
		t.Errorf("call split = %d RLL, %d ST", rllCalls, stCalls)
	}

	unused := pa.UnusedAois()
	if len(unused) != 2 {
		t.Fatalf("unused AOIs = %v", unused)
	}

	programs := pa.ProgramsUsingAoi("A_Uniform_RNG")
	if len(programs) != 1 || programs[0] != "MainProgram" {
		t.Errorf("programs using AOI = %v", programs)
	}

	nested := pa.NestedAoiCalls()
	if len(nested) != 1 || nested[0].Caller != "Outer" || nested[0].Callee != "A_Uniform_RNG" {
		t.Errorf("nested calls = %+v", nested)
	}

	byUsage := pa.AoisByUsage()
	if byUsage[0].Mnemonic != "A_Uniform_RNG" || byUsage[0].Count != 3 {
		t.Errorf("AOIs by usage = %+v", byUsage)
	}
}

func TestAoiCalledOncePerRung(t *testing.T) {
	controller := &Controller{
		Programs: []Program{{
			Name: "MainProgram",
			Routines: []Routine{
				rllRoutine("MainRoutine", "Scaler(Inst,RawIn,ScaledOut);"),
			},
		}},
		AOIs: []AddOnInstruction{{Name: "Scaler"}},
	}
	pa := AnalyzeController(controller)

	// Three operands, one call site.
	if refs := pa.AoiReferences("Scaler"); len(refs) != 1 {
		t.Errorf("expected 1 call site, got %+v", refs)
	}
	if refs := pa.AoiReferences("Scaler"); refs[0].Path() != "MainProgram/MainRoutine/Rung#0" {
		t.Errorf("call path = %q", refs[0].Path())
	}
}

func TestRoutinesByTypeAndProgramNames(t *testing.T) {
	controller := &Controller{
		Programs: []Program{
			{
				Name: "Alpha",
				Routines: []Routine{
					rllRoutine("R1", "OTE(A);"),
					stRoutine("R2", "a := 1;"),
					{Name: "R3", Type: "FBD"},
				},
			},
			{
				Name:     "Beta",
				Routines: []Routine{rllRoutine("R1", "OTE(B);")},
			},
		},
	}
	pa := AnalyzeController(controller)

	byType := pa.RoutinesByType()
	if byType["RLL"] != 2 || byType["ST"] != 1 || byType["FBD"] != 1 {
		t.Errorf("routines by type = %v", byType)
	}

	names := pa.ProgramNames()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Errorf("program names = %v", names)
	}
	if got := pa.RoutinesInProgram("Alpha"); len(got) != 3 {
		t.Errorf("Alpha routines = %+v", got)
	}
}
