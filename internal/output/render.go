// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/cfnsmoke/internal/config"
	"github.com/tfctl/cfnsmoke/internal/preflight"
	"github.com/tfctl/cfnsmoke/internal/runner"
	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// Options control rendering.
type Options struct {
	Format string
	Color  bool
}

// UseColor reports whether colour was asked for and f is a terminal.
func UseColor(requested bool, f *os.File) bool {
	return requested && f != nil && term.IsTerminal(int(f.Fd()))
}

// document is the machine-readable shape of a run.
type document struct {
	Preflight     []preflight.Check `json:"preflight,omitempty" yaml:"preflight,omitempty"`
	runner.Report `yaml:",inline"`
	ExitCode      int `json:"exit_code" yaml:"exit_code"`
}

// Report renders a finished (or aborted) run to w.
func Report(w io.Writer, report *runner.Report, checks []preflight.Check, opts Options) error {
	switch opts.Format {
	case "json":
		return emitJSON(w, document{Preflight: checks, Report: *report, ExitCode: report.ExitCode()})
	case "yaml":
		return emitYAML(w, document{Preflight: checks, Report: *report, ExitCode: report.ExitCode()})
	default:
		return reportText(w, report, opts)
	}
}

// PlannedRound is one round as --plan shows it.
type PlannedRound struct {
	scaffold.Round `yaml:",inline"`
	Steps          []scaffold.Step `json:"steps" yaml:"steps"`
}

// Plan builds the planned rounds for identifier without touching anything.
func Plan(identifier string, tools scaffold.Tools) []PlannedRound {
	var plan []PlannedRound
	for _, r := range scaffold.Rounds() {
		plan = append(plan, PlannedRound{Round: r, Steps: scaffold.Steps(r, identifier, tools)})
	}
	return plan
}

// RenderPlan writes the plan to w in the requested format.
func RenderPlan(w io.Writer, plan []PlannedRound, opts Options) error {
	switch opts.Format {
	case "json":
		return emitJSON(w, plan)
	case "yaml":
		return emitYAML(w, plan)
	}

	styles := newStyles(opts.Color)
	var rows [][]string
	for _, pr := range plan {
		for _, s := range pr.Steps {
			state := ""
			if s.Disabled {
				state = "disabled"
			}
			rows = append(rows, []string{string(pr.Kind), s.Name, s.CommandLine(), state})
		}
	}

	fmt.Fprintln(w, styles.header.Render("Planned steps:"))
	fmt.Fprintln(w, styles.table([]string{"KIND", "STEP", "COMMAND", ""}, rows))
	return nil
}

func reportText(w io.Writer, report *runner.Report, opts Options) error {
	styles := newStyles(opts.Color)

	var rows [][]string
	for _, rr := range report.Rounds {
		for _, s := range rr.Steps {
			rows = append(rows, []string{string(rr.Kind), s.Name, s.Command, exitColumn(s), durationColumn(s)})
		}
	}

	fmt.Fprintln(w, styles.header.Render(fmt.Sprintf("\nSmoke run for %q (started %s):", report.Identifier, humanize.Time(report.Started))))
	fmt.Fprintln(w, styles.table([]string{"KIND", "STEP", "COMMAND", "EXIT", "TIME"}, rows))

	for _, rr := range report.Rounds {
		if rr.Dir == "" {
			continue
		}
		fmt.Fprintf(w, "%-8s %s\n", rr.Kind, rr.Dir)
		for _, f := range rr.Findings {
			if !f.OK {
				fmt.Fprintf(w, "  ! %s after %s: %s\n", f.Check, f.Phase, f.Detail)
			}
		}
	}

	footer := fmt.Sprintf("%d failed step(s), exit %d", report.Failures(), report.ExitCode())
	if report.Stopped {
		footer += " (stopped early)"
	}
	fmt.Fprintln(w, styles.header.Render(footer))
	return nil
}

func exitColumn(s runner.StepResult) string {
	switch {
	case s.Skipped:
		return "skipped"
	case s.Listing:
		return "-"
	default:
		return strconv.Itoa(s.ExitCode)
	}
}

func durationColumn(s runner.StepResult) string {
	if s.Skipped {
		return "-"
	}
	return s.Duration.Round(time.Millisecond).String()
}

func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	return nil
}

func emitYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

type styles struct {
	header, even, odd lipgloss.Style
}

func newStyles(colored bool) styles {
	cell := lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
	s := styles{
		header: lipgloss.NewStyle().Align(lipgloss.Left).Bold(true),
		even:   cell,
		odd:    cell,
	}

	if colored {
		headerColor, evenColor, oddColor := getColors("colors")
		s.header = s.header.Foreground(headerColor)
		s.even = s.even.Foreground(evenColor)
		s.odd = s.odd.Foreground(oddColor)
	}
	return s
}

// table lays rows out in borderless columns.
func (s styles) table(headers []string, rows [][]string) *table.Table {
	return table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = s.header
			case row%2 == 0:
				style = s.even
			default:
				style = s.odd
			}
			if col > 0 {
				style = style.PaddingLeft(1)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color so output stays readable on
// light and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if colorCfg, err := config.GetString(key); err == nil {
			return lipgloss.Color(colorCfg)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
