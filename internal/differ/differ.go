// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Snapshot maps a path relative to the snapshot root onto a short description
// of the entry ("dir" or a humanized size).
type Snapshot map[string]string

// Take walks root and records every entry below it. The root itself is not
// recorded.
func Take(fs afero.Fs, root string) (Snapshot, error) {
	snap := Snapshot{}
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if info.IsDir() {
			snap[filepath.ToSlash(rel)] = "dir"
		} else {
			snap[filepath.ToSlash(rel)] = humanize.Bytes(uint64(info.Size()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", root, err)
	}
	return snap, nil
}

// Diff compares two snapshots and writes an annotated listing of the changes
// to w. It reports whether anything changed.
func Diff(w io.Writer, before, after Snapshot, coloring bool) (bool, error) {
	left, err := json.Marshal(before)
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare snapshots: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "No changes.")
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}
	log.Debugf("diff rendered: %d bytes", len(diffString))

	fmt.Fprintln(w, diffString)
	return true, nil
}

// Added returns the paths present in after but not in before, sorted.
func Added(before, after Snapshot) []string {
	var added []string
	for path := range after {
		if _, ok := before[path]; !ok {
			added = append(added, path)
		}
	}
	sort.Strings(added)
	return added
}
