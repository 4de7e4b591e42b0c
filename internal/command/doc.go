// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the cfnsmoke CLI. It wires flags, their env and
// config file sources, the run action and shell completion.
package command
