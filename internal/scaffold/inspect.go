// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// ProjectFile is the settings file `cfn init` writes at the project root.
const ProjectFile = ".rpdk-config"

// Phase selects which expectations Inspect applies.
type Phase string

const (
	AfterInit     Phase = "init"
	AfterGenerate Phase = "generate"
)

// Finding is the outcome of one scaffold check. Findings are informational;
// they never alter a run's exit status.
type Finding struct {
	Phase  Phase  `json:"phase" yaml:"phase"`
	Check  string `json:"check" yaml:"check"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ExpectedFiles lists the files the Python language plugin is known to write
// for a round at the given phase, relative to the project root. Modules are
// produced by the provider CLI alone and have no plugin output.
func ExpectedFiles(r Round, phase Phase) []string {
	if r.Kind == KindModule {
		return nil
	}

	pkg := filepath.Join("src", PackageName(r.Template))
	switch phase {
	case AfterGenerate:
		return []string{filepath.Join(pkg, "models.py")}
	default:
		return []string{
			filepath.Join(pkg, "__init__.py"),
			filepath.Join(pkg, "handlers.py"),
			"requirements.txt",
			"template.yml",
		}
	}
}

// Inspect checks the project written into dir against what the round asked
// for. Problems reading the directory become failed findings, not errors.
func Inspect(fs afero.Fs, dir string, r Round, identifier string, phase Phase) []Finding {
	var findings []Finding
	add := func(check string, ok bool, detail string) {
		findings = append(findings, Finding{Phase: phase, Check: check, OK: ok, Detail: detail})
	}

	if phase == AfterInit {
		findings = append(findings, inspectProjectFile(fs, dir, r, identifier)...)
	}

	for _, rel := range ExpectedFiles(r, phase) {
		ok, err := afero.Exists(fs, filepath.Join(dir, rel))
		switch {
		case err != nil:
			add("file "+rel, false, err.Error())
		case !ok:
			add("file "+rel, false, "missing")
		default:
			add("file "+rel, true, "")
		}
	}

	return findings
}

func inspectProjectFile(fs afero.Fs, dir string, r Round, identifier string) []Finding {
	var findings []Finding
	add := func(check string, ok bool, detail string) {
		findings = append(findings, Finding{Phase: AfterInit, Check: check, OK: ok, Detail: detail})
	}

	raw, err := afero.ReadFile(fs, filepath.Join(dir, ProjectFile))
	if err != nil {
		add(ProjectFile, false, "unreadable: "+err.Error())
		return findings
	}
	if !gjson.ValidBytes(raw) {
		add(ProjectFile, false, "not valid JSON")
		return findings
	}
	add(ProjectFile, true, "")

	doc := gjson.ParseBytes(raw)
	expect := func(path, want string) {
		got := doc.Get(path)
		switch {
		case !got.Exists():
			add(path, false, "missing")
		case got.String() != want:
			add(path, false, fmt.Sprintf("got %q, want %q", got.String(), want))
		default:
			add(path, true, "")
		}
	}

	expect("typeName", r.Template)
	expect("artifact_type", string(r.Kind))

	if r.Kind != KindModule {
		expect("language", identifier)
		useDocker := doc.Get("settings.use_docker")
		switch {
		case !useDocker.Exists():
			add("settings.use_docker", false, "missing")
		case !useDocker.Bool():
			add("settings.use_docker", false, "docker packaging was requested but is disabled")
		default:
			add("settings.use_docker", true, "")
		}
	}

	return findings
}
