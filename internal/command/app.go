// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfnsmoke/internal/config"
	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/meta"
)

// Namespace is the config key prefix consulted before bare keys.
const Namespace = "run"

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	config.Config.Namespace = Namespace

	// A missing config file is fine; flags fall back to env and defaults. A
	// CFNSMOKE_CFG_FILE that points nowhere is not.
	cfgFile, err := config.Path()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	log.Debugf("config file: %q", cfgFile)

	meta := meta.Meta{
		Args:        args,
		Context:     ctx,
		StartingDir: sd,
		ConfigFile:  cfgFile,
	}

	app := &cli.Command{
		Name:      "cfnsmoke",
		Usage:     "smoke test a CloudFormation provider CLI",
		UsageText: "cfnsmoke [options] <identifier>",
		ArgsUsage: "<identifier>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cfnsmoke version info",
				HideDefault: true,
			},
		}, NewRunFlags(cfgFile)...),
		Action: runCommandAction,
	}

	app.Commands = append(app.Commands,
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
