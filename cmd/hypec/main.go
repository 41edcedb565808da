// Command hypec compiles a HypeScript source file down to the stack
// machine's binary instruction encoding: parse, typecheck, translate,
// encode.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hypescript/bytecode"
	"hypescript/codegen"
	"hypescript/parser"
	"hypescript/types"
)

func main() {
	flagArgs := os.Args[1:]
	if len(flagArgs) < 1 || len(flagArgs) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: hypec <input.hype> [output.hyc]")
		os.Exit(1)
	}

	inputPath := flagArgs[0]
	outputPath := ""
	if len(flagArgs) == 2 {
		outputPath = flagArgs[1]
	} else {
		outputPath = defaultOutputPath(inputPath)
	}

	if err := run(inputPath, outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".hyc"
}

func run(inputPath, outputPath string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("hypec: %w", err)
	}

	seq, diags := parser.Parse(string(src))
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "hypec: %s (%d:%d)\n", d.Message, d.Start, d.End)
		}
		return fmt.Errorf("hypec: parsing failed with %d error(s)", len(diags))
	}

	if _, err := types.Typecheck(seq); err != nil {
		return fmt.Errorf("hypec: %w", err)
	}

	instrs, err := codegen.Translate(seq)
	if err != nil {
		return fmt.Errorf("hypec: %w", err)
	}

	var program []byte
	for _, instr := range instrs {
		program = bytecode.Encode(program, instr)
	}

	if err := os.WriteFile(outputPath, program, 0o644); err != nil {
		return fmt.Errorf("hypec: %w", err)
	}
	return nil
}
