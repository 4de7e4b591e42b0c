// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// List writes an `ls -la` style listing of dir to w: one line per entry with
// mode, humanized size, modification time and name, dot files included.
func List(fs afero.Fs, dir string, w io.Writer) error {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	fmt.Fprintf(w, "%s:\n", dir)
	fmt.Fprintf(w, "total %d\n", len(entries))

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Mode(),
			humanize.Bytes(uint64(e.Size())),
			e.ModTime().Format("Jan _2 15:04"),
			name)
	}

	return tw.Flush()
}
