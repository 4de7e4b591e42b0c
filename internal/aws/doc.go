// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws resolves the AWS configuration chain the provider CLI will use,
// so preflight can report the effective profile and region.
package aws
