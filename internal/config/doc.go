// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for cfnsmoke's user
// configuration. The configuration is an optional YAML document located in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/cfnsmoke.yaml or $HOME/.config/cfnsmoke.yaml
//   - macOS: $HOME/Library/Application Support/cfnsmoke.yaml
//
// CFNSMOKE_CFG_FILE overrides the location. The same file also backs the
// command flags through cli-altsrc, so `cli: cfn` or `run: {cli: cfn}` both
// set the provider CLI binary.
package config
