// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package scaffold describes what a smoke run does without doing it: the
// fixed RESOURCE/MODULE/HOOK round table, the ordered steps of each round and
// the expectations used to inspect a freshly scaffolded project.
package scaffold
