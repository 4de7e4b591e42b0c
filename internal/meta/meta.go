// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
)

// Meta contains runtime metadata shared by commands: the raw CLI arguments,
// the context, the directory cfnsmoke was started from and the config file
// that flag sources read, if any.
type Meta struct {
	Args        []string
	Context     context.Context
	StartingDir string
	ConfigFile  string
}
