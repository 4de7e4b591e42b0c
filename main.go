// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tfctl/cfnsmoke/internal/command"
	"github.com/tfctl/cfnsmoke/internal/log"
	"github.com/tfctl/cfnsmoke/internal/runner"
	"github.com/tfctl/cfnsmoke/internal/version"
)

// Exit codes cfnsmoke produces itself. Any other code is the exit code of the
// last command a run executed.
const (
	exitUsage       = 1
	exitWorkspace   = 2
	exitInterrupted = 130
	// exitSignaled stands in for a last command killed by an unknown signal.
	exitSignaled = 255
)

func main() {
	os.Exit(realMain())
}

// handleVersion answers a lone --version/-v without building the app. Anywhere
// else the flag parser decides, so flag values and identifiers after "--" that
// happen to read "-v" are left alone.
func handleVersion(args []string) bool {
	if len(args) == 2 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Println(version.String())
		return true
	}
	return false
}

// handleNakedCommand appends --help if no identifier is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// exitCode maps the error returned by the app to the process exit code.
func exitCode(err error) int {
	var status command.ExitStatus
	switch {
	case err == nil:
		return 0
	case errors.As(err, &status) && status < 0:
		return exitSignaled
	case errors.As(err, &status):
		return int(status)
	case errors.Is(err, runner.ErrWorkspace):
		return exitWorkspace
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitUsage
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitUsage
	}

	err = app.Run(ctx, args)
	code := exitCode(err)

	var status command.ExitStatus
	if err != nil && !errors.As(err, &status) {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
	}

	return code
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// SIGINT cancels the running command; the rounds stop there.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return initAndRunApp(ctx, args)
}
