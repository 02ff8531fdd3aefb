package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plclens/plclens/internal/analysis"
	"github.com/plclens/plclens/internal/diag"
	"github.com/plclens/plclens/internal/lexer"
	"github.com/plclens/plclens/internal/parser"
)

// checkResult holds the outcome of checking a single source file.
type checkResult struct {
	File     string
	Errors   int
	Warnings int
}

func (r checkResult) clean() bool { return r.Errors == 0 }

// runCheck walks the given paths, parses and analyzes every structured
// text file it finds, and prints a per-file summary with totals.
func runCheck(args []string, dialect lexer.Dialect) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error accessing path %s: %v\n", arg, err)
			os.Exit(1)
		}
		if info.IsDir() {
			found, err := findSourceFiles(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", arg, err)
				os.Exit(1)
			}
			files = append(files, found...)
		} else {
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		fmt.Println("No source files found")
		return
	}

	var clean, failed, totalErrors, totalWarnings int
	for _, file := range files {
		result := checkFile(file, dialect)
		if result.clean() {
			clean++
			fmt.Printf("  ok   %s", file)
		} else {
			failed++
			fmt.Printf("  FAIL %s (%d errors)", file, result.Errors)
		}
		if result.Warnings > 0 {
			fmt.Printf(", %d warnings", result.Warnings)
		}
		fmt.Println()

		totalErrors += result.Errors
		totalWarnings += result.Warnings
	}

	fmt.Printf("\n%d files checked: %d clean, %d with errors", len(files), clean, failed)
	if totalWarnings > 0 {
		fmt.Printf(", %d warnings total", totalWarnings)
	}
	fmt.Println()

	if failed > 0 {
		os.Exit(1)
	}
}

// findSourceFiles returns every .st and .scl file under root.
func findSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".st" || ext == ".scl" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func checkFile(file string, dialect lexer.Dialect) checkResult {
	result := checkResult{File: file}

	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", file, err)
		result.Errors = 1
		return result
	}

	unit, parseErrs := parser.ParseRecovering(string(content),
		parser.WithDialect(dialect), parser.WithFilename(file))
	for _, e := range parseErrs {
		if e.Severity == diag.SeverityError {
			result.Errors++
		} else {
			result.Warnings++
		}
	}

	for _, pou := range unit.Pous() {
		for _, d := range analysis.AnalyzePou(pou).Diagnostics {
			switch d.Severity {
			case diag.SeverityError:
				result.Errors++
			case diag.SeverityWarning:
				result.Warnings++
			}
		}
	}
	return result
}
