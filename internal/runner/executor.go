// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"os"

	execute "github.com/alexellis/go-execute/v2"

	"github.com/tfctl/cfnsmoke/internal/log"
)

const (
	// ExitNotRunnable is recorded when a command could not be started at
	// all, matching the shell's "command not found" status.
	ExitNotRunnable = 127
	// ExitInterrupted is recorded for a command killed because the run was
	// cancelled, matching the shell's status after SIGINT.
	ExitInterrupted = 130
)

// Invocation is one external command to run in Dir.
type Invocation struct {
	Command string
	Args    []string
	Dir     string
}

// Executor runs external commands. A non-zero exit is a result, not an
// error; an error means the command could not be run.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (int, error)
}

// StreamExecutor runs commands with go-execute. Children share our stdin and
// stream to our stdout and stderr. With Quiet set, stdin is closed and child
// output is captured and logged at debug level instead.
type StreamExecutor struct {
	Quiet bool
}

// Execute implements Executor.
func (e StreamExecutor) Execute(ctx context.Context, inv Invocation) (int, error) {
	log.Debugf("executing: command=%s dir=%s", inv.Command, inv.Dir)
	for i, arg := range inv.Args {
		log.Tracef("argv[%d]=%q", i+1, arg)
	}

	task := execute.ExecTask{
		Command:     inv.Command,
		Args:        inv.Args,
		Cwd:         inv.Dir,
		StreamStdio: !e.Quiet,
	}
	if !e.Quiet {
		task.Stdin = os.Stdin
	}

	res, err := task.Execute(ctx)
	if ctx.Err() != nil {
		return ExitInterrupted, fmt.Errorf("%s interrupted: %w", inv.Command, ctx.Err())
	}
	if err != nil {
		return ExitNotRunnable, fmt.Errorf("failed to run %s: %w", inv.Command, err)
	}

	if e.Quiet {
		log.Debugf("%s stdout: %s", inv.Command, res.Stdout)
		log.Debugf("%s stderr: %s", inv.Command, res.Stderr)
	}

	return res.ExitCode, nil
}
