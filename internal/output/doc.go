// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders smoke run reports and plans as text tables, json or
// yaml, and dumps the report schema.
package output
