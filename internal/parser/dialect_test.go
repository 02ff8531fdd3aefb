package parser

import (
	"testing"

	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/lexer"
)

func TestSCLFunctionBlockWithBegin(t *testing.T) {
	input := `FUNCTION_BLOCK "Conveyor Control"
VAR
	speed : INT;
END_VAR
BEGIN
speed := 10;
END_FUNCTION_BLOCK`

	pou := singlePou(t, input, WithDialect(lexer.DialectSCL))

	if pou.Name.Name != "Conveyor Control" {
		t.Errorf("name = %q, want the quoted identifier content", pou.Name.Name)
	}
	if len(pou.Body) != 1 {
		t.Errorf("body has %d statements, want 1", len(pou.Body))
	}
}

func TestSCLDataBlock(t *testing.T) {
	input := `DATA_BLOCK Settings
VAR
	maxSpeed : INT := 1500;
END_VAR
BEGIN
END_DATA_BLOCK`

	pou := singlePou(t, input, WithDialect(lexer.DialectSCL))

	if pou.Kind != ast.PouDataBlock {
		t.Errorf("kind = %v, want data block", pou.Kind)
	}
	if len(pou.VarBlocks) != 1 || len(pou.VarBlocks[0].Decls) != 1 {
		t.Fatalf("data block declarations missing")
	}
	if pou.VarBlocks[0].Decls[0].Init == nil {
		t.Errorf("maxSpeed lost its initializer")
	}
}

func TestSCLOrganizationBlock(t *testing.T) {
	input := `ORGANIZATION_BLOCK Cycle
BEGIN
tick := tick + 1;
END_ORGANIZATION_BLOCK`

	pou := singlePou(t, input, WithDialect(lexer.DialectSCL))

	if pou.Kind != ast.PouOrganizationBlock {
		t.Errorf("kind = %v, want organization block", pou.Kind)
	}
}

func TestSCLPragmaAttachesToPou(t *testing.T) {
	input := `{ S7_Optimized_Access := 'TRUE' }
FUNCTION_BLOCK FB1
VAR
	x : INT;
END_VAR
BEGIN
x := 1;
END_FUNCTION_BLOCK`

	pou := singlePou(t, input, WithDialect(lexer.DialectSCL))

	if len(pou.Pragmas) != 1 {
		t.Fatalf("expected 1 pragma, got %d", len(pou.Pragmas))
	}
	if pou.Pragmas[0].Content != "S7_Optimized_Access := 'TRUE'" {
		t.Errorf("pragma content = %q", pou.Pragmas[0].Content)
	}
}

func TestSCLCompoundAssignments(t *testing.T) {
	body := parseBody(t, "x += 1;\ny -= 2;\nz *= 3;\nw /= 4;", WithDialect(lexer.DialectSCL))

	wantOps := []ast.AssignOp{ast.AssignAdd, ast.AssignSub, ast.AssignMul, ast.AssignDiv}
	if len(body) != len(wantOps) {
		t.Fatalf("expected %d statements, got %d", len(wantOps), len(body))
	}
	for i, want := range wantOps {
		stmt := body[i].(*ast.AssignStmt)
		if stmt.Op != want {
			t.Errorf("statement %d op = %v, want %v", i, stmt.Op, want)
		}
	}
}

func TestCompoundAssignmentRejectedInGeneric(t *testing.T) {
	_, errs := Parse("PROGRAM P\nx += 1;\nEND_PROGRAM")

	if len(errs) == 0 {
		t.Fatalf("generic dialect should reject compound assignment")
	}
}

func TestSCLGotoAndLabels(t *testing.T) {
	body := parseBody(t, `LABEL retry;
retry: n := n + 1;
IF n < 3 THEN
	GOTO retry;
END_IF;`, WithDialect(lexer.DialectSCL))

	if len(body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(body))
	}
	if _, ok := body[0].(*ast.EmptyStmt); !ok {
		t.Errorf("LABEL declaration is %T, not *ast.EmptyStmt", body[0])
	}
	label, ok := body[1].(*ast.LabelStmt)
	if !ok {
		t.Fatalf("statement is %T, not *ast.LabelStmt", body[1])
	}
	if label.Name.Name != "retry" {
		t.Errorf("label = %q, want retry", label.Name.Name)
	}
	ifStmt := body[3].(*ast.IfStmt)
	gotoStmt, ok := ifStmt.Then[0].(*ast.GotoStmt)
	if !ok {
		t.Fatalf("guarded statement is %T, not *ast.GotoStmt", ifStmt.Then[0])
	}
	if gotoStmt.Label.Name != "retry" {
		t.Errorf("goto target = %q, want retry", gotoStmt.Label.Name)
	}
}

func TestSCLRegion(t *testing.T) {
	body := parseBody(t, `REGION Init steps
x := 0;
y := 0;
END_REGION`, WithDialect(lexer.DialectSCL))

	region, ok := body[0].(*ast.RegionStmt)
	if !ok {
		t.Fatalf("statement is %T, not *ast.RegionStmt", body[0])
	}
	if region.Name != "Init steps" {
		t.Errorf("region name = %q, want %q", region.Name, "Init steps")
	}
	if len(region.Body) != 2 {
		t.Errorf("region body has %d statements, want 2", len(region.Body))
	}
}

func TestSCLQuotedMemberAccess(t *testing.T) {
	body := parseBody(t, `"Motor Data".speed := 5;`, WithDialect(lexer.DialectSCL))

	stmt := body[0].(*ast.AssignStmt)
	member, ok := stmt.Target.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("target is %T, not *ast.MemberExpr", stmt.Target)
	}
	base, ok := member.X.(*ast.Ident)
	if !ok || base.Name != "Motor Data" {
		t.Errorf("base = %v, want the quoted identifier", member.X)
	}
	if !base.Quoted {
		t.Errorf("quoted identifier lost its Quoted flag")
	}
}

func TestRockwellParsesLikeGeneric(t *testing.T) {
	input := `PROGRAM MainRoutine
VAR
	Counter : DINT;
END_VAR
Counter := Counter + 1;
MOV(Counter, , Dest);
END_PROGRAM`

	generic := singlePou(t, input)
	rockwell := singlePou(t, input, WithDialect(lexer.DialectRockwell))

	if len(generic.Body) != len(rockwell.Body) {
		t.Fatalf("body lengths differ: %d vs %d", len(generic.Body), len(rockwell.Body))
	}
	call := rockwell.Body[1].(*ast.CallStmt).Call
	if len(call.Args) != 3 || call.Args[1].Value != nil {
		t.Errorf("empty argument slot not preserved in the rockwell dialect")
	}
}
