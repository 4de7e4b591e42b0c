// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runner performs smoke rounds. Each round gets its own temporary
// directory, which is never removed, and runs its steps there one after the
// other. External command failures are recorded in the Report and do not
// stop the run unless FailFast is set.
package runner
