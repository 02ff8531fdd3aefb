package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plclens/plclens/internal/analysis"
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
	"github.com/plclens/plclens/internal/lsp"
	"github.com/plclens/plclens/internal/parser"
	"github.com/plclens/plclens/internal/plcmodel"
	"github.com/plclens/plclens/internal/rll"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: plclens <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  parse <file>     Parse a structured text file and report diagnostics\n")
		fmt.Fprintf(os.Stderr, "  analyze <file>   Run the full analysis pipeline on every POU\n")
		fmt.Fprintf(os.Stderr, "  xref <file>      Print the cross-reference and project statistics\n")
		fmt.Fprintf(os.Stderr, "  dot <file>       Emit control-flow graphs in DOT format\n")
		fmt.Fprintf(os.Stderr, "  rung <text>      Parse one ladder rung and list its tag references\n")
		fmt.Fprintf(os.Stderr, "  check [paths]    Check every .st/.scl file under the given paths\n")
		fmt.Fprintf(os.Stderr, "  lsp              Run the language server on stdin/stdout\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	dialectName := flag.String("dialect", "generic", "structured text dialect: generic, scl, rockwell")
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	dialect, err := dialectByName(*dialectName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "parse":
		runParse(args, dialect)
	case "analyze":
		runAnalyze(args, dialect)
	case "xref":
		runXref(args, dialect)
	case "dot":
		runDot(args, dialect)
	case "rung":
		runRung(args)
	case "check":
		runCheck(args, dialect)
	case "lsp":
		runLsp(dialect)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func dialectByName(name string) (lexer.Dialect, error) {
	switch name {
	case "generic":
		return lexer.DialectGeneric, nil
	case "scl":
		return lexer.DialectSCL, nil
	case "rockwell":
		return lexer.DialectRockwell, nil
	}
	return lexer.DialectGeneric, fmt.Errorf("unknown dialect %q", name)
}

func loadUnit(args []string, command string, dialect lexer.Dialect) (string, *ast.CompilationUnit, []parser.ParseError) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: plclens %s <file>\n", command)
		os.Exit(1)
	}
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		os.Exit(1)
	}
	unit, errs := parser.ParseRecovering(string(content),
		parser.WithDialect(dialect), parser.WithFilename(filename))
	return string(content), unit, errs
}

func runParse(args []string, dialect lexer.Dialect) {
	source, unit, errs := loadUnit(args, "parse", dialect)

	formatter := diag.NewFormatter()
	formatter.AddSource(args[0], source)
	for _, err := range errs {
		formatter.Format(err.ToDiagnostic())
	}
	if len(errs) > 0 {
		os.Exit(1)
	}

	for _, pou := range unit.Pous() {
		fmt.Printf("%s %s\n", pou.Kind, pou.Name.Name)
	}
}

func runAnalyze(args []string, dialect lexer.Dialect) {
	source, unit, errs := loadUnit(args, "analyze", dialect)

	formatter := diag.NewFormatter()
	formatter.AddSource(args[0], source)
	for _, err := range errs {
		formatter.Format(err.ToDiagnostic())
	}

	exitCode := 0
	if len(errs) > 0 {
		exitCode = 1
	}
	for _, pou := range unit.Pous() {
		result := analysis.AnalyzePou(pou)
		fmt.Printf("%s %s: complexity %d, %d diagnostics\n",
			pou.Kind, pou.Name.Name, result.Complexity, len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			formatter.Format(d)
			if d.Severity == diag.SeverityError {
				exitCode = 1
			}
		}
	}
	os.Exit(exitCode)
}

func runXref(args []string, dialect lexer.Dialect) {
	_, unit, errs := loadUnit(args, "xref", dialect)
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d parse errors; cross-reference may be incomplete\n",
			args[0], len(errs))
	}

	project := plcmodel.FromCompilationUnit(unit)
	stats := plcmodel.StatsFromProject(project)
	fmt.Printf("POUs: %d (%d programs, %d functions, %d function blocks)\n",
		stats.PouCount, stats.Programs, stats.Functions, stats.FunctionBlocks)
	fmt.Printf("Variables: %d, data types: %d, tasks: %d\n",
		stats.VariableCount, len(stats.DataTypes), stats.TaskCount)

	x := plcmodel.BuildCrossReference(project)
	printList("Defined tags", x.DefinedTags())
	printList("Used tags", x.UsedTags())
	printList("Used POUs", x.UsedPous())
	printList("Unused tags", x.UnusedTags())
	printList("Undefined tags", x.UndefinedTags())
}

func printList(header string, items []string) {
	fmt.Printf("%s (%d):\n", header, len(items))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
}

func runDot(args []string, dialect lexer.Dialect) {
	_, unit, errs := loadUnit(args, "dot", dialect)
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d parse errors\n", args[0], len(errs))
		os.Exit(1)
	}

	for _, pou := range unit.Pous() {
		cfg := analysis.BuildCFG(pou.Body)
		fmt.Printf("// %s %s: complexity %d\n", pou.Kind, pou.Name.Name, cfg.CyclomaticComplexity())
		fmt.Println(cfg.ToDot())
	}
}

func runLsp(dialect lexer.Dialect) {
	server := lsp.NewServer(dialect)
	if err := server.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Language server error: %v\n", err)
		os.Exit(1)
	}
}

func runRung(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: plclens rung <text>\n")
		os.Exit(1)
	}
	rung := rll.ParseRung(args[0])
	if !rung.Parsed() {
		fmt.Fprintln(os.Stderr, rung.Err.FormatWithContext(rung.Raw))
		os.Exit(1)
	}
	for _, ref := range rung.TagReferences() {
		fmt.Printf("%s operand %d: %s (%s)\n",
			ref.Instruction, ref.OperandIndex, ref.Name, ref.FullOperand)
	}
}
