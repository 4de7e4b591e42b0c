// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scaffold

import "strings"

// Step names, in the order they appear in a round.
const (
	StepListBefore = "list-before"
	StepInit       = "init"
	StepListAfter  = "list-after"
	StepTypeCheck  = "typecheck"
	StepValidate   = "validate"
	StepGenerate   = "generate"
	StepSubmit     = "submit"
)

// Tools names the binaries a round shells out to.
type Tools struct {
	// CLI is the provider CLI, normally "cfn".
	CLI string
	// Checker is the static type checker, normally "mypy".
	Checker string
	// CheckPath overrides the type checker target. Empty means
	// DefaultCheckPath of the round's template.
	CheckPath string
}

// DefaultTools returns the stock binaries.
func DefaultTools() Tools {
	return Tools{CLI: "cfn", Checker: "mypy"}
}

// Step is a single action of a round. Listing steps have no Command; they are
// performed by the runner itself. Disabled steps are planned but never run.
type Step struct {
	Name     string   `json:"name" yaml:"name"`
	Command  string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args     []string `json:"args,omitempty" yaml:"args,omitempty"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// IsListing reports whether the step is a directory listing.
func (s Step) IsListing() bool {
	return s.Name == StepListBefore || s.Name == StepListAfter
}

// CommandLine renders the step the way it would be typed in a shell.
func (s Step) CommandLine() string {
	if s.IsListing() {
		return "ls -la"
	}
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}

// Steps builds the ordered step list for one round. The identifier is passed
// to init verbatim. The submit step is always present and always disabled.
func Steps(r Round, identifier string, tools Tools) []Step {
	steps := []Step{
		{Name: StepListBefore},
		{
			Name:    StepInit,
			Command: tools.CLI,
			Args:    []string{"init", "-t", r.Template, "-a", string(r.Kind), identifier, "--use-docker"},
		},
		{Name: StepListAfter},
	}

	if r.TypeCheck {
		path := tools.CheckPath
		if path == "" {
			path = DefaultCheckPath(r.Template)
		}
		steps = append(steps, Step{
			Name:    StepTypeCheck,
			Command: tools.Checker,
			Args:    []string{path, "--strict", "--implicit-reexport"},
		})
	}

	return append(steps,
		Step{Name: StepValidate, Command: tools.CLI, Args: []string{"validate", "-vvv"}},
		Step{Name: StepGenerate, Command: tools.CLI, Args: []string{"generate", "-vvv"}},
		Step{Name: StepSubmit, Command: tools.CLI, Args: []string{"submit", "--dry-run", "-vvv"}, Disabled: true},
	)
}
