// Command facts prints Claude Code facts from the built-in catalog.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pysugar/code-facts/internal/facts"
	"github.com/pysugar/code-facts/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right)
	factStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const usage = `Claude Code Facts

Usage:
  facts              Show a random Claude Code fact
  facts --all        Show all Claude Code facts
  facts --version    Show the build version
  facts --help, -h   Show this help message
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("facts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	all := fs.Bool("all", false, "show all facts")
	showVersion := fs.Bool("version", false, "show the build version")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			fmt.Fprint(stdout, usage)
			return 0
		}
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch {
	case *showVersion:
		fmt.Fprintf(stdout, "facts %s\n", version.String())
	case *all:
		printAll(stdout)
	default:
		printRandom(stdout)
	}
	return 0
}

func printRandom(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("🎲 Random Claude Code Fact:"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, factStyle.Render(facts.RandomIcon()+" "+facts.Random()))
	fmt.Fprintln(w)
}

func printAll(w io.Writer) {
	rule := ruleStyle.Render(strings.Repeat("=", 80))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("📚 All %d Claude Code Facts:", facts.Count())))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	for i, fact := range facts.All() {
		fmt.Fprintf(w, "%s. %s\n", indexStyle.Render(fmt.Sprint(i+1)), factStyle.Render(fact))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
