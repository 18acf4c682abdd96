// Package terminal implements the portfolio shell: a fixed command table and
// a session that keeps scrollback.
package terminal

import (
	"fmt"
	"sort"
	"strings"
)

// Result is the outcome of one command. Clear asks the caller to reset the
// displayed history; Lines is empty in that case.
type Result struct {
	Lines []string `json:"lines"`
	Clear bool     `json:"clear,omitempty"`
}

// Execute maps raw input to canned output. Input is trimmed and lower-cased
// before lookup. Blank input yields an empty result.
func Execute(raw string) Result {
	cmd := Normalize(raw)
	if cmd == "" {
		return Result{}
	}

	switch cmd {
	case "clear", "cls":
		return Result{Clear: true}
	case "help":
		return Result{Lines: append(clone(helpLines), "")}
	}

	if lines, ok := verbatim[cmd]; ok {
		return Result{Lines: clone(lines)}
	}
	if lines, ok := wrapped[cmd]; ok {
		out := make([]string, 0, len(lines)+2)
		out = append(out, "")
		out = append(out, lines...)
		out = append(out, "")
		return Result{Lines: out}
	}

	return Result{Lines: []string{
		"",
		fmt.Sprintf("Command not found: %s", cmd),
		`Type "help" to see available commands`,
		"",
	}}
}

// Normalize trims and lower-cases a command line.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Commands returns every recognised command, sorted.
func Commands() []string {
	out := []string{"help", "clear", "cls"}
	for k := range wrapped {
		out = append(out, k)
	}
	for k := range verbatim {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clone(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
