// Command factcheck runs the catalog accessor checks and exits non-zero when
// any of them fails.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pysugar/code-facts/internal/facts"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type check struct {
	name string
	fn   func() error
}

var checks = []check{
	{"Random returns a non-empty string", func() error {
		if facts.Random() == "" {
			return fmt.Errorf("expected non-empty string")
		}
		return nil
	}},
	{"Random returns a fact from the collection", func() error {
		if !slices.Contains(facts.All(), facts.Random()) {
			return fmt.Errorf("fact should be in the collection")
		}
		return nil
	}},
	{"All returns multiple facts", func() error {
		if len(facts.All()) == 0 {
			return fmt.Errorf("expected at least one fact")
		}
		return nil
	}},
	{"Count matches All", func() error {
		if facts.Count() != len(facts.All()) {
			return fmt.Errorf("count %d, all %d", facts.Count(), len(facts.All()))
		}
		return nil
	}},
	{"ByIndex returns the matching fact", func() error {
		all := facts.All()
		for i := range all {
			if got, ok := facts.ByIndex(i); !ok || got != all[i] {
				return fmt.Errorf("index %d mismatch", i)
			}
		}
		return nil
	}},
	{"ByIndex rejects invalid indexes", func() error {
		if _, ok := facts.ByIndex(-1); ok {
			return fmt.Errorf("expected not found for negative index")
		}
		if _, ok := facts.ByIndex(1000); ok {
			return fmt.Errorf("expected not found for out of range index")
		}
		return nil
	}},
	{"All returns a copy", func() error {
		a, b := facts.All(), facts.All()
		a[0] = "mutated"
		if b[0] == "mutated" || facts.All()[0] == "mutated" {
			return fmt.Errorf("should return a new slice each time")
		}
		return nil
	}},
}

func main() {
	os.Exit(run(checks, os.Stdout))
}

func run(checks []check, w io.Writer) int {
	fmt.Fprintln(w, "Running code-facts checks...")
	fmt.Fprintln(w)

	passed, failed := 0, 0
	for _, c := range checks {
		if err := c.fn(); err != nil {
			fmt.Fprintln(w, failStyle.Render("✗ "+c.name))
			fmt.Fprintf(w, "  %v\n", err)
			failed++
			continue
		}
		fmt.Fprintln(w, passStyle.Render("✓ "+c.name))
		passed++
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Checks passed: %d\n", passed)
	fmt.Fprintf(w, "Checks failed: %d\n", failed)
	fmt.Fprintln(w, rule)

	if failed > 0 {
		return 1
	}
	return 0
}
