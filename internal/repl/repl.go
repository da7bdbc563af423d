// Package repl reads expressions interactively and prints their values.
//
// Two front ends share the same evaluation: a line oriented loop for pipes
// and dumb terminals, and a terminal UI with a result history.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"go.creack.net/pemdas"
)

// Settings configures a session.
type Settings struct {
	Calculator pemdas.Calculator
	Format     string // fmt verb for results, pemdas.DefaultFormat if empty.
	Prompt     string
	Banner     string
	Verbose    bool
}

// outcome is the rendering of one evaluated line.
type outcome struct {
	input string
	text  string
	err   error
}

func (s Settings) evaluate(line string) outcome {
	res, err := s.Calculator.Eval(line)
	if err != nil {
		if s.Verbose {
			log.Printf("Eval %q: %s.", line, err)
		}
		return outcome{input: line, text: pemdas.Describe(line, err), err: err}
	}
	return outcome{input: line, text: res.Format(s.Format)}
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit":
		return true
	}
	return false
}

// Loop runs the line oriented session until in is exhausted, the user types
// exit or quit, or ctx is done. Evaluation errors are printed and the loop
// carries on.
func Loop(ctx context.Context, in io.Reader, out io.Writer, s Settings) error {
	if s.Banner != "" {
		fmt.Fprintln(out, s.Banner)
	}

	// Reads block, so they run aside and the loop waits on either a line or
	// ctx.
	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, s.Prompt)
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			if err := <-readErr; err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isExit(line) {
			return nil
		}
		o := s.evaluate(line)
		if o.err != nil {
			fmt.Fprintln(out, o.text)
			continue
		}
		fmt.Fprintf(out, "Result: %s\n", o.text)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run starts the terminal UI when stdin and stdout are terminals and plain is
// false, the line loop otherwise.
func Run(ctx context.Context, s Settings, plain bool) error {
	if plain || !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return Loop(ctx, os.Stdin, os.Stdout, s)
	}
	p := tea.NewProgram(NewModel(s), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
