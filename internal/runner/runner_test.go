// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package runner

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apexlog "github.com/apex/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// recorder is an Executor that remembers every invocation and answers with
// canned exit codes keyed by "<kind> <subcommand>" or just "<subcommand>".
type recorder struct {
	calls []Invocation
	codes map[string]int
	errs  map[string]error
	// onInit, when set, runs for every init call so tests can fake a scaffold.
	onInit func(inv Invocation)
}

func (r *recorder) Execute(_ context.Context, inv Invocation) (int, error) {
	r.calls = append(r.calls, inv)

	sub := inv.Command
	if len(inv.Args) > 0 && inv.Command == "cfn" {
		sub = inv.Args[0]
	}
	if sub == "init" && r.onInit != nil {
		r.onInit(inv)
	}
	if err, ok := r.errs[sub]; ok {
		return ExitNotRunnable, err
	}
	if code, ok := r.codes[kindOf(inv)+" "+sub]; ok {
		return code, nil
	}
	return r.codes[sub], nil
}

// kindOf recovers the round kind from the directory prefix.
func kindOf(inv Invocation) string {
	base := filepath.Base(inv.Dir)
	parts := strings.Split(base, "-")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToUpper(parts[1])
}

func newTestRunner(t *testing.T, opts Options) (*Runner, *recorder, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp", 0o755))
	if opts.TempRoot == "" {
		opts.TempRoot = "/tmp"
	}

	rec := &recorder{codes: map[string]int{}, errs: map[string]error{}}
	out := &bytes.Buffer{}

	r := New(opts)
	r.Fs = fs
	r.Exec = rec
	r.Out = out
	r.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r, rec, out
}

func TestRunEndToEnd(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})

	report, err := r.Run(context.Background(), "my-resource")
	require.NoError(t, err)
	require.Len(t, report.Rounds, 3)

	var lines []string
	for _, c := range rec.calls {
		lines = append(lines, strings.Join(append([]string{c.Command}, c.Args...), " "))
	}
	assert.Equal(t, []string{
		"cfn init -t AWS::Foo::Bar -a RESOURCE my-resource --use-docker",
		"mypy src/aws_foo_bar/ --strict --implicit-reexport",
		"cfn validate -vvv",
		"cfn generate -vvv",
		"cfn init -t AWS::Foo::Bar::Module -a MODULE my-resource --use-docker",
		"cfn validate -vvv",
		"cfn generate -vvv",
		"cfn init -t AWS::Foo::Bar -a HOOK my-resource --use-docker",
		"cfn validate -vvv",
		"cfn generate -vvv",
	}, lines)

	// validate and generate run where the preceding init ran.
	for i, c := range rec.calls {
		if c.Args[0] == "init" {
			continue
		}
		prev := i - 1
		for rec.calls[prev].Command != "cfn" || rec.calls[prev].Args[0] != "init" {
			prev--
		}
		assert.Equal(t, rec.calls[prev].Dir, c.Dir, "call %d", i)
	}

	assert.Equal(t, 0, report.ExitCode())
	assert.Equal(t, "my-resource", report.Identifier)
}

func TestRunDistinctDirectories(t *testing.T) {
	r, _, _ := newTestRunner(t, Options{})

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	dirs := report.Dirs()
	require.Len(t, dirs, 3)
	seen := map[string]bool{}
	for i, d := range dirs {
		assert.False(t, seen[d], "directory reused: %s", d)
		seen[d] = true
		assert.Equal(t, "/tmp", filepath.Dir(d))
		assert.True(t, strings.HasPrefix(filepath.Base(d), "cfnsmoke-"+strings.ToLower(string(scaffold.Rounds()[i].Kind))+"-"))

		ok, err := afero.DirExists(r.Fs, d)
		require.NoError(t, err)
		assert.True(t, ok, "directories are left on disk")
	}
}

func TestRunTypeCheckOnlyInResourceRound(t *testing.T) {
	r, _, _ := newTestRunner(t, Options{})

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	for _, round := range report.Rounds {
		var has bool
		for _, s := range round.Steps {
			if s.Name == scaffold.StepTypeCheck {
				has = true
			}
		}
		assert.Equal(t, round.Kind == scaffold.KindResource, has, string(round.Kind))
	}
}

func TestRunSubmitNeverExecuted(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	for _, c := range rec.calls {
		assert.NotEqual(t, "submit", c.Args[0])
	}
	for _, round := range report.Rounds {
		last := round.Steps[len(round.Steps)-1]
		assert.Equal(t, scaffold.StepSubmit, last.Name)
		assert.True(t, last.Skipped)
		assert.False(t, last.Executed())
	}
}

func TestRunListsBeforeAndAfterInit(t *testing.T) {
	r, rec, out := newTestRunner(t, Options{})
	rec.onInit = func(inv Invocation) {
		_ = afero.WriteFile(r.Fs, filepath.Join(inv.Dir, ".rpdk-config"), []byte("{}"), 0o644)
	}

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	for _, round := range report.Rounds {
		assert.Equal(t, 2, strings.Count(out.String(), round.Dir+":\n"))
		assert.Equal(t, scaffold.StepListBefore, round.Steps[0].Name)
		assert.Equal(t, scaffold.StepInit, round.Steps[1].Name)
		assert.Equal(t, scaffold.StepListAfter, round.Steps[2].Name)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "total 0\n"))
	assert.Equal(t, 3, strings.Count(out.String(), ".rpdk-config\n"))
}

func TestRunFailuresDoNotHalt(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})
	rec.codes["RESOURCE init"] = 2
	rec.codes["validate"] = 1

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	assert.Len(t, rec.calls, 10)
	assert.False(t, report.Stopped)
	assert.Equal(t, 4, report.Failures())
	// generate is last and succeeded.
	assert.Equal(t, 0, report.ExitCode())
}

func TestRunExitCodeIsLastCommand(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})
	rec.codes["HOOK generate"] = 3

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)
	assert.Equal(t, 3, report.ExitCode())
}

func TestRunFailFast(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{FailFast: true})
	rec.codes["MODULE validate"] = 5

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	assert.True(t, report.Stopped)
	require.Len(t, report.Rounds, 2)
	assert.Equal(t, 5, report.ExitCode())

	last := rec.calls[len(rec.calls)-1]
	assert.Equal(t, []string{"validate", "-vvv"}, last.Args)
}

func TestRunCommandNotFound(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})
	rec.errs["mypy"] = errors.New("exec: \"mypy\": executable file not found in $PATH")

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	tc := report.Rounds[0].Steps[3]
	assert.Equal(t, scaffold.StepTypeCheck, tc.Name)
	assert.Equal(t, ExitNotRunnable, tc.ExitCode)
	assert.Contains(t, tc.Error, "not found")
	// The run carried on.
	assert.Len(t, report.Rounds, 3)
}

func TestRunWorkspaceFailure(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})
	r.Fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	report, err := r.Run(context.Background(), "python39")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkspace)
	assert.Empty(t, rec.calls)
	require.Len(t, report.Rounds, 1)
	assert.Empty(t, report.Rounds[0].Dir)
}

func TestRunCancelled(t *testing.T) {
	r, rec, _ := newTestRunner(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	rec.onInit = func(Invocation) { cancel() }

	report, err := r.Run(ctx, "python39")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.calls, 1)
	assert.Len(t, report.Rounds, 1)
}

func TestRunToolOverrides(t *testing.T) {
	tools := scaffold.Tools{CLI: "cfn", Checker: "pyright", CheckPath: "src/"}
	r, rec, _ := newTestRunner(t, Options{Tools: tools})

	_, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)
	assert.Equal(t, "pyright", rec.calls[1].Command)
	assert.Equal(t, []string{"src/", "--strict", "--implicit-reexport"}, rec.calls[1].Args)
}

func TestRunDiffAndInspect(t *testing.T) {
	r, rec, out := newTestRunner(t, Options{Diff: true, Inspect: true})
	rec.onInit = func(inv Invocation) {
		body := `{"artifact_type":"` + inv.Args[4] + `","typeName":"` + inv.Args[2] + `","language":"python39","settings":{"use_docker":true}}`
		_ = afero.WriteFile(r.Fs, filepath.Join(inv.Dir, ".rpdk-config"), []byte(body), 0o644)
	}

	report, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	assert.Contains(t, out.String(), ".rpdk-config")
	for _, round := range report.Rounds {
		assert.Equal(t, []string{".rpdk-config"}, round.Added)
		require.NotEmpty(t, round.Findings)
		for _, f := range round.Findings {
			if f.Check == ".rpdk-config" || f.Check == "typeName" || f.Check == "artifact_type" {
				assert.True(t, f.OK, "%s %s: %s", round.Kind, f.Check, f.Detail)
			}
		}
	}

	// Resource and hook rounds miss the plugin files; findings never change
	// the exit code.
	assert.Equal(t, 0, report.ExitCode())
}

func TestReportExitCodeEmpty(t *testing.T) {
	var nilReport *Report
	assert.Equal(t, 0, nilReport.ExitCode())
	assert.Equal(t, 0, (&Report{}).ExitCode())
}

// captureLog sends log output to a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger, ok := apexlog.Log.(*apexlog.Logger)
	require.True(t, ok)
	oldHandler, oldLevel := logger.Handler, logger.Level
	t.Cleanup(func() {
		apexlog.SetHandler(oldHandler)
		apexlog.SetLevel(oldLevel)
	})

	buf := &bytes.Buffer{}
	apexlog.SetHandler(&log.CustomHandler{Writer: buf})
	apexlog.SetLevel(apexlog.InfoLevel)
	return buf
}

func TestRunLogsStepFields(t *testing.T) {
	buf := captureLog(t)
	r, rec, _ := newTestRunner(t, Options{})
	rec.errs["mypy"] = errors.New("exec: \"mypy\": executable file not found in $PATH")

	_, err := r.Run(context.Background(), "python39")
	require.NoError(t, err)

	out := buf.String()
	for _, kind := range []string{"RESOURCE", "MODULE", "HOOK"} {
		assert.Contains(t, out, " W step disabled kind="+kind+" step=submit\n")
	}
	assert.Contains(t, out, " E step did not complete error=exec: \"mypy\"")
	assert.Contains(t, out, "kind=RESOURCE step=typecheck\n")
}
