package plcmodel

import (
	"testing"
)

func ladderProject(content string, locals ...string) *Project {
	vars := make([]Variable, 0, len(locals))
	for _, name := range locals {
		vars = append(vars, Variable{Name: name, DataType: "DINT", Class: ClassLocal})
	}
	return &Project{
		Pous: []*Pou{{
			Name:      "MainRoutine",
			Kind:      KindProgram,
			Interface: Interface{Locals: vars},
			Body:      &RawBody{Lang: "RLL", Content: content},
		}},
	}
}

func TestLadderCrossReference(t *testing.T) {
	project := ladderProject("XIC(Start)OTE(Motor);MOV(Counter,Dest);",
		"Start", "Motor", "Counter", "Dest", "NotUsed")
	x := BuildCrossReference(project)

	for _, tag := range []string{"Start", "Motor", "Counter", "Dest"} {
		if !x.IsTagUsed(tag) {
			t.Errorf("tag %s should be used", tag)
		}
	}
	for _, instr := range []string{"XIC", "OTE", "MOV"} {
		if !x.IsPouUsed(instr) {
			t.Errorf("instruction %s should be in used POUs", instr)
		}
	}
	if x.IsTagUsed("NotUsed") {
		t.Error("NotUsed has no references and must not appear used")
	}
	if got := x.UnusedTags(); len(got) != 1 || got[0] != "NotUsed" {
		t.Errorf("UnusedTags = %v, want [NotUsed]", got)
	}
}

func TestLadderReferences(t *testing.T) {
	project := ladderProject("XIC(Start)OTE(Motor);MOV(Counter,Dest);",
		"Start", "Motor", "Counter", "Dest")
	x := BuildCrossReference(project)

	refs := x.ReferencesTo("start")
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference to Start, got %d", len(refs))
	}
	r := refs[0]
	if r.Instruction != "XIC" || r.Rung != 0 || r.Pou != "MainRoutine" {
		t.Errorf("Start reference = %+v", r)
	}

	refs = x.ReferencesTo("Dest")
	if len(refs) != 1 || refs[0].Instruction != "MOV" || refs[0].Rung != 1 {
		t.Errorf("Dest references = %+v", refs)
	}
}

func TestLadderExpressionOperands(t *testing.T) {
	project := ladderProject("CMP(Counter > Limit)XIC(?)OTE(Out);",
		"Counter", "Limit", "Out")
	x := BuildCrossReference(project)

	for _, tag := range []string{"Counter", "Limit", "Out"} {
		if !x.IsTagUsed(tag) {
			t.Errorf("tag %s should be used", tag)
		}
	}
	if x.IsTagUsed("?") {
		t.Error("placeholder operand must not register as a tag")
	}
	if !x.IsPouUsed("CMP") {
		t.Error("CMP should be a used instruction")
	}
	if len(x.UndefinedTags()) != 0 {
		t.Errorf("undefined tags = %v", x.UndefinedTags())
	}
}

func TestStructuredTextScan(t *testing.T) {
	project := &Project{
		Pous: []*Pou{{
			Name: "Pump",
			Kind: KindProgram,
			Interface: Interface{Locals: []Variable{
				{Name: "Start", DataType: "BOOL", Class: ClassLocal},
				{Name: "Motor", DataType: "Drive", Class: ClassLocal},
				{Name: "Limit", DataType: "DINT", Class: ClassLocal},
				{Name: "msg", DataType: "STRING", Class: ClassLocal},
				{Name: "Timer1", DataType: "TON", Class: ClassLocal},
			}},
			Body: &StBody{Text: `(* warm up *)
IF Start AND NOT %IX0.1 THEN
    Timer1(IN := Start, PT := T#5s);
    Motor.Speed := Limit + 10;
END_IF;
msg := 'Fault: ignore THIS';`},
		}},
	}
	x := BuildCrossReference(project)

	for _, tag := range []string{"Start", "Motor", "Limit", "msg"} {
		if !x.IsTagUsed(tag) {
			t.Errorf("tag %s should be used", tag)
		}
	}
	if !x.IsPouUsed("Timer1") {
		t.Error("instance call Timer1(...) should count as a POU use")
	}
	for _, notTag := range []string{"IF", "THEN", "IN", "PT", "T", "THIS", "Fault"} {
		if x.IsTagUsed(notTag) {
			t.Errorf("%s must not register as a tag use", notTag)
		}
	}
}

func TestAssignmentTargetCountsAsUse(t *testing.T) {
	project := &Project{
		Pous: []*Pou{{
			Name: "P",
			Kind: KindProgram,
			Interface: Interface{Locals: []Variable{
				{Name: "Ghost", DataType: "DINT", Class: ClassLocal},
			}},
			Body: &StBody{Text: "Ghost := Ghost + 1;"},
		}},
	}
	x := BuildCrossReference(project)

	if !x.IsTagUsed("Ghost") {
		t.Error("assignment target should count as a use")
	}
	if got := x.UnusedTags(); len(got) != 0 {
		t.Errorf("UnusedTags = %v, want none", got)
	}
}

func TestUndefinedTags(t *testing.T) {
	project := &Project{
		Pous: []*Pou{{
			Name: "P",
			Kind: KindProgram,
			Interface: Interface{Locals: []Variable{
				{Name: "Declared", DataType: "DINT", Class: ClassLocal},
			}},
			Body: &StBody{Text: "Phantom := 1;"},
		}},
	}
	x := BuildCrossReference(project)

	if got := x.UndefinedTags(); len(got) != 1 || got[0] != "Phantom" {
		t.Errorf("UndefinedTags = %v, want [Phantom]", got)
	}
	if got := x.UnusedTags(); len(got) != 1 || got[0] != "Declared" {
		t.Errorf("UnusedTags = %v, want [Declared]", got)
	}
}

func TestTypeUsage(t *testing.T) {
	project := &Project{
		Globals: []Variable{
			{Name: "Batch", DataType: "ARRAY OF Recipe", Class: ClassGlobal},
			{Name: "AxisRef", DataType: "REF_TO Axis", Class: ClassGlobal},
		},
	}
	x := BuildCrossReference(project)

	if !x.IsTypeUsed("recipe") {
		t.Error("array element type should be recorded, case-insensitively")
	}
	if !x.IsTypeUsed("Axis") {
		t.Error("reference target type should be recorded")
	}
	if x.IsTypeUsed("Recipe[]") {
		t.Error("raw rendered type text must not be a key")
	}
}

func TestUnusedPous(t *testing.T) {
	project := &Project{
		Pous: []*Pou{
			{Name: "Main", Kind: KindProgram, Body: &StBody{Text: "Scale(5);"}},
			{Name: "Scale", Kind: KindFunction},
			{Name: "Orphan", Kind: KindFunction},
		},
	}
	x := BuildCrossReference(project)

	if x.IsPouUsed("Orphan") {
		t.Error("Orphan is never called")
	}
	got := x.UnusedPous()
	if len(got) != 2 || got[0] != "Main" || got[1] != "Orphan" {
		t.Errorf("UnusedPous = %v, want [Main Orphan]", got)
	}
}

func TestBaseTag(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Motor", "Motor"},
		{"Motor.Speed", "Motor"},
		{"Local:1:I.Data", "Local"},
		{"Tag.[Other]", "Tag"},
		{"Buf[3]", "Buf"},
		{"  Spaced  ", "Spaced"},
		{"%IX0.0", ""},
		{"42", ""},
		{"?", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := BaseTag(c.in); got != c.want {
			t.Errorf("BaseTag(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
