// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ snapshots a working directory and renders what changed
// between two snapshots, typically before and after `cfn init`.
package differ
