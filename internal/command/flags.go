// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// NewRunFlags constructs the flags of a smoke run. Values come from the
// command line, then the environment, then cfgFile (namespaced key first),
// then the default. An empty cfgFile skips the file sources.
func NewRunFlags(cfgFile string) []cli.Flag {
	tools := scaffold.DefaultTools()

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "AWS shared config profile checked by preflight",
			Sources: NameSpacedValueChain(Namespace, cfgFile, "aws-profile", "CFNSMOKE_AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "cli",
			Usage:   "provider CLI to drive",
			Value:   tools.CLI,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "cli", "CFNSMOKE_CLI"),
		},
		&cli.StringFlag{
			Name:    "checker",
			Usage:   "static type checker run against the RESOURCE scaffold",
			Value:   tools.Checker,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "checker", "CFNSMOKE_CHECKER"),
		},
		&cli.StringFlag{
			Name:    "checker-path",
			Usage:   "type checker target, relative to the round directory (default: " + scaffold.DefaultCheckPath(scaffold.Rounds()[0].Template) + ")",
			Sources: NameSpacedValueChain(Namespace, cfgFile, "checker-path", "CFNSMOKE_CHECKER_PATH"),
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "color"),
		},
		&cli.BoolFlag{
			Name:    "diff",
			Usage:   "show what init added to each directory",
			Value:   false,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "diff"),
		},
		&cli.BoolFlag{
			Name:    "fail-fast",
			Usage:   "stop at the first command that exits non-zero",
			Value:   false,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "fail-fast", "CFNSMOKE_FAIL_FAST"),
		},
		&cli.BoolFlag{
			Name:    "inspect",
			Usage:   "check the scaffold after init and generate",
			Value:   true,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "inspect"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: NameSpacedValueChain(Namespace, cfgFile, "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "plan",
			Usage:       "print the steps without running them",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region checked by preflight",
			Sources: NameSpacedValueChain(Namespace, cfgFile, "region", "CFNSMOKE_REGION"),
		},
		&cli.BoolFlag{
			Name:        "schema",
			Usage:       "dump the report schema",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:    "skip-preflight",
			Usage:   "do not probe for tools and AWS config",
			Value:   false,
			Sources: NameSpacedValueChain(Namespace, cfgFile, "skip-preflight"),
		},
		&cli.StringFlag{
			Name:    "tmp-root",
			Usage:   "directory the round directories are created in",
			Sources: NameSpacedValueChain(Namespace, cfgFile, "tmp-root", "CFNSMOKE_TMP_ROOT"),
			Validator: func(value string) error {
				return FlagValidators(value, TempRootValidator)
			},
		},
	}
}

// NameSpacedValueChain builds a flag source chain of the given env vars
// followed by the namespaced and then the bare key in the YAML config at path.
func NameSpacedValueChain(ns string, path string, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.EnvVars(envs...)
	if path == "" {
		return chain
	}

	chain.Chain = append(chain.Chain,
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	)

	return chain
}
