// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfnsmoke/internal/aws"
	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/output"
	"github.com/tfctl/cfnsmoke/internal/preflight"
	"github.com/tfctl/cfnsmoke/internal/runner"
	"github.com/tfctl/cfnsmoke/internal/scaffold"
	"github.com/tfctl/cfnsmoke/internal/util"
	"github.com/tfctl/cfnsmoke/internal/version"
)

// ExitStatus carries the exit code of the last command of a run back to main.
// It is not a cli.ExitCoder; main does the exiting.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// Seams for tests.
var (
	newRunner = runner.New
	newProber = preflight.NewProber
)

// runCommandAction is the action handler of the root command. It performs the
// three smoke rounds for the identifier, or prints them with --plan, and
// reports the outcome in the requested format.
func runCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	stdout, stderr := writers(cmd)

	if cmd.Bool("version") {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	if cmd.Bool("schema") {
		output.DumpReportSchema(stdout)
		return nil
	}

	identifier, err := IdentifierArg(cmd)
	if err != nil {
		return err
	}

	format := cmd.String("output")
	opts := output.Options{
		Format: format,
		Color:  cmd.Bool("color") && isTerminal(stdout),
	}

	tools := scaffold.Tools{
		CLI:       cmd.String("cli"),
		Checker:   cmd.String("checker"),
		CheckPath: cmd.String("checker-path"),
	}

	if cmd.Bool("plan") {
		return output.RenderPlan(stdout, output.Plan(identifier, tools), opts)
	}

	tmpRoot, err := util.ResolveTempRoot(cmd.String("tmp-root"))
	if err != nil {
		return fmt.Errorf("invalid tmp-root: %w", err)
	}

	var checks []preflight.Check
	if !cmd.Bool("skip-preflight") {
		checks = newProber(
			aws.WithProfile(cmd.String("aws-profile")),
			aws.WithRegion(cmd.String("region")),
		).Run(ctx, tools)
	}

	// Listings, diffs and child output would corrupt machine readable output,
	// so they go to stderr or the debug log instead.
	machine := format != "text"
	r := newRunner(runner.Options{
		Tools:    tools,
		TempRoot: tmpRoot,
		FailFast: cmd.Bool("fail-fast"),
		Diff:     cmd.Bool("diff"),
		Inspect:  cmd.Bool("inspect"),
		Color:    opts.Color,
		Quiet:    machine,
	})
	r.Out = stdout
	if machine {
		r.Out = stderr
	}

	report, runErr := r.Run(ctx, identifier)
	if err := output.Report(stdout, report, checks, opts); err != nil {
		log.WithError(err).Error("failed to render report")
	}
	if runErr != nil {
		return runErr
	}

	if code := report.ExitCode(); code != 0 {
		return ExitStatus(code)
	}
	return nil
}

// writers returns the root command's output streams.
func writers(cmd *cli.Command) (io.Writer, io.Writer) {
	root := cmd.Root()
	stdout, stderr := root.Writer, root.ErrWriter
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.UseColor(true, f)
}
