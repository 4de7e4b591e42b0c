// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/tfctl/cfnsmoke/internal/differ"
	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// ErrWorkspace wraps failures to create or enter a round's directory. These
// abort the run.
var ErrWorkspace = errors.New("workspace unavailable")

// Options tune a run. The zero value runs the stock tools under os.TempDir().
type Options struct {
	Tools    scaffold.Tools
	TempRoot string
	// FailFast stops at the first non-zero exit, like `set -e`.
	FailFast bool
	// Diff prints a before/after diff of the directory around init.
	Diff bool
	// Inspect records scaffold findings after init and generate.
	Inspect bool
	// Color enables ANSI colour in diffs.
	Color bool
	// Quiet captures child output instead of streaming it.
	Quiet bool
}

// Runner performs the smoke rounds.
type Runner struct {
	Options

	Fs   afero.Fs
	Exec Executor
	// Out receives directory listings and diffs.
	Out io.Writer

	now func() time.Time
}

// New returns a Runner on the real filesystem that streams command output.
func New(opts Options) *Runner {
	if opts.Tools.CLI == "" {
		opts.Tools.CLI = scaffold.DefaultTools().CLI
	}
	if opts.Tools.Checker == "" {
		opts.Tools.Checker = scaffold.DefaultTools().Checker
	}
	return &Runner{
		Options: opts,
		Fs:      afero.NewOsFs(),
		Exec:    StreamExecutor{Quiet: opts.Quiet},
		Out:     os.Stdout,
		now:     time.Now,
	}
}

// Run performs every round in order for identifier. The returned report is
// never nil and holds whatever completed, even when err is set.
func (r *Runner) Run(ctx context.Context, identifier string) (*Report, error) {
	report := &Report{Identifier: identifier, Started: r.clock()()}

	for _, round := range scaffold.Rounds() {
		rr, stop, err := r.runRound(ctx, round, identifier)
		report.Rounds = append(report.Rounds, rr)
		if err != nil {
			return report, err
		}
		if stop {
			report.Stopped = true
			log.Warnf("stopping after %s: fail-fast is set", round.Kind)
			return report, nil
		}
	}

	return report, nil
}

// runRound performs one round. stop is set when FailFast tripped.
func (r *Runner) runRound(ctx context.Context, round scaffold.Round, identifier string) (RoundReport, bool, error) {
	rr := RoundReport{Round: round}

	dir, err := r.workspace(round.Kind)
	if err != nil {
		return rr, false, err
	}
	rr.Dir = dir
	log.Infof("round %s: working in %s", round, dir)

	var before differ.Snapshot
	for _, step := range scaffold.Steps(round, identifier, r.Tools) {
		if err := ctx.Err(); err != nil {
			return rr, false, err
		}

		if step.Name == scaffold.StepInit && r.Diff {
			if before, err = differ.Take(r.Fs, dir); err != nil {
				log.Warnf("%v", err)
			}
		}

		res := r.runStep(ctx, round.Kind, dir, step)
		rr.Steps = append(rr.Steps, res)

		switch step.Name {
		case scaffold.StepListAfter:
			r.afterInit(&rr, identifier, before)
		case scaffold.StepGenerate:
			if r.Inspect {
				rr.Findings = append(rr.Findings, scaffold.Inspect(r.Fs, dir, round, identifier, scaffold.AfterGenerate)...)
			}
		}

		if r.FailFast && res.Executed() && res.ExitCode != 0 {
			return rr, true, nil
		}
	}

	return rr, false, nil
}

// afterInit runs the optional diff and inspection once init has written the
// scaffold.
func (r *Runner) afterInit(rr *RoundReport, identifier string, before differ.Snapshot) {
	if r.Diff && before != nil {
		after, err := differ.Take(r.Fs, rr.Dir)
		if err != nil {
			log.Warnf("%v", err)
		} else {
			rr.Added = differ.Added(before, after)
			if _, err := differ.Diff(r.Out, before, after, r.Color); err != nil {
				log.Warnf("diff failed: %v", err)
			}
		}
	}

	if r.Inspect {
		rr.Findings = append(rr.Findings, scaffold.Inspect(r.Fs, rr.Dir, rr.Round, identifier, scaffold.AfterInit)...)
	}
}

// workspace creates a fresh directory for the round and confirms it can be
// used as a working directory.
func (r *Runner) workspace(kind scaffold.Kind) (string, error) {
	prefix := fmt.Sprintf("cfnsmoke-%s-", strings.ToLower(string(kind)))

	dir, err := afero.TempDir(r.Fs, r.TempRoot, prefix)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create directory for %s: %v", ErrWorkspace, kind, err)
	}

	info, err := r.Fs.Stat(dir)
	if err != nil {
		return dir, fmt.Errorf("%w: cannot enter %s: %v", ErrWorkspace, dir, err)
	}
	if !info.IsDir() {
		return dir, fmt.Errorf("%w: %s is not a directory", ErrWorkspace, dir)
	}

	return dir, nil
}

// runStep performs a single step and records its outcome. It never fails;
// problems are logged and kept in the result.
func (r *Runner) runStep(ctx context.Context, kind scaffold.Kind, dir string, step scaffold.Step) (res StepResult) {
	res = StepResult{
		Name:    step.Name,
		Command: step.CommandLine(),
		Listing: step.IsListing(),
		Skipped: step.Disabled,
	}

	if step.Disabled {
		log.WithFields(log.Fields{"kind": kind, "step": step.Name}).Warn("step disabled")
		return res
	}

	start := r.clock()()
	defer func() { res.Duration = r.clock()().Sub(start) }()

	if step.IsListing() {
		if err := List(r.Fs, dir, r.Out); err != nil {
			log.Warnf("%v", err)
			res.Error = err.Error()
		}
		return res
	}

	log.Infof("running: %s", res.Command)
	code, err := r.Exec.Execute(ctx, Invocation{Command: step.Command, Args: step.Args, Dir: dir})
	res.ExitCode = code
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"kind": kind, "step": step.Name}).Error("step did not complete")
		res.Error = err.Error()
	} else if code != 0 {
		log.Warnf("%s exited with %d", res.Command, code)
	}

	return res
}

func (r *Runner) clock() func() time.Time {
	if r.now == nil {
		return time.Now
	}
	return r.now
}
