// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/tfctl/cfnsmoke/internal/aws"
	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/scaffold"
)

// Check is the outcome of one preflight probe.
type Check struct {
	Name   string `json:"name" yaml:"name"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail" yaml:"detail"`
}

// Prober holds the lookups preflight relies on, so tests can fake them.
type Prober struct {
	LookPath func(string) (string, error)
	AWSEnv   func(context.Context) (aws.Environment, error)
}

// NewProber returns a Prober backed by PATH and the AWS config chain. opts
// override the profile and region the chain would pick.
func NewProber(opts ...aws.Option) Prober {
	return Prober{
		LookPath: exec.LookPath,
		AWSEnv: func(ctx context.Context) (aws.Environment, error) {
			return aws.ResolveEnvironment(ctx, opts...)
		},
	}
}

// Run probes for the tools a smoke run shells out to and the AWS environment
// `cfn submit` would use. Nothing here stops a run; results are logged and
// returned.
func (p Prober) Run(ctx context.Context, tools scaffold.Tools) []Check {
	var checks []Check

	for _, bin := range []string{tools.CLI, tools.Checker, "docker"} {
		checks = append(checks, p.binary(bin))
	}

	env, err := p.AWSEnv(ctx)
	switch {
	case err != nil:
		checks = append(checks, Check{Name: "aws", Detail: err.Error()})
	case env.Region == "":
		checks = append(checks, Check{Name: "aws", Detail: fmt.Sprintf("profile %s has no region", env.Profile)})
	default:
		checks = append(checks, Check{Name: "aws", OK: true, Detail: fmt.Sprintf("profile %s, region %s", env.Profile, env.Region)})
	}

	for _, c := range checks {
		if c.OK {
			log.Infof("preflight %s: %s", c.Name, c.Detail)
		} else {
			log.Warnf("preflight %s: %s", c.Name, c.Detail)
		}
	}

	return checks
}

func (p Prober) binary(name string) Check {
	path, err := p.LookPath(name)
	if err != nil {
		return Check{Name: name, Detail: "not found on PATH"}
	}
	return Check{Name: name, OK: true, Detail: path}
}
