// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"time"

	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// StepResult records what happened to one step. Listing steps and the
// disabled submit step are recorded too so the report mirrors the plan.
type StepResult struct {
	Name     string        `json:"name" yaml:"name"`
	Command  string        `json:"command" yaml:"command"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Skipped  bool          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Listing  bool          `json:"listing,omitempty" yaml:"listing,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Executed reports whether the step ran an external command.
func (s StepResult) Executed() bool {
	return !s.Skipped && !s.Listing
}

// RoundReport is the outcome of one round.
type RoundReport struct {
	scaffold.Round `yaml:",inline"`
	Dir            string             `json:"dir" yaml:"dir"`
	Steps          []StepResult       `json:"steps" yaml:"steps"`
	Findings       []scaffold.Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
	Added          []string           `json:"added,omitempty" yaml:"added,omitempty"`
}

// Report is the outcome of a whole run.
type Report struct {
	Identifier string        `json:"identifier" yaml:"identifier"`
	Started    time.Time     `json:"started" yaml:"started"`
	Rounds     []RoundReport `json:"rounds" yaml:"rounds"`
	Stopped    bool          `json:"stopped,omitempty" yaml:"stopped,omitempty"`
}

// ExitCode is the exit code of the last external command that ran, which is
// what a shell running the same commands in sequence would exit with. It is 0
// when nothing ran. A command killed by a signal outside cancellation is
// recorded as -1: go-execute reports no signal number, so 128+signal cannot
// be reconstructed.
func (r *Report) ExitCode() int {
	if r == nil {
		return 0
	}
	for i := len(r.Rounds) - 1; i >= 0; i-- {
		steps := r.Rounds[i].Steps
		for j := len(steps) - 1; j >= 0; j-- {
			if steps[j].Executed() {
				return steps[j].ExitCode
			}
		}
	}
	return 0
}

// Failures counts executed steps with a non-zero exit code.
func (r *Report) Failures() int {
	n := 0
	for _, round := range r.Rounds {
		for _, s := range round.Steps {
			if s.Executed() && s.ExitCode != 0 {
				n++
			}
		}
	}
	return n
}

// Dirs returns each round's working directory in order.
func (r *Report) Dirs() []string {
	dirs := make([]string, 0, len(r.Rounds))
	for _, round := range r.Rounds {
		dirs = append(dirs, round.Dir)
	}
	return dirs
}
