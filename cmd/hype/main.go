// Command hype runs a compiled HypeScript bytecode program against the
// stack machine, wiring stdin/stdout as the program's input and output
// streams.
package main

import (
	"flag"
	"fmt"
	"os"

	"hypescript/vm"
)

var (
	trace bool
)

func init() {
	flag.BoolVar(&trace, "trace", false, "print an execution trace after the program finishes")
	flag.BoolVar(&trace, "t", false, "shorthand for -trace")
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hype [-trace] <program.hyc>")
		os.Exit(1)
	}

	if err := run(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hype: %w", err)
	}

	m := vm.New(program).WithInputStream(os.Stdin).WithOutputStream(os.Stdout)
	if trace {
		m = m.WithTrace()
	}

	summary, err := m.Run()
	if err != nil {
		return err
	}

	if trace {
		fmt.Println(summary.String())
	}
	return nil
}
