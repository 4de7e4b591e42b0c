// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveTempRoot turns a --tmp-root value into an absolute directory. A
// leading "~/" is expanded to the home directory and relative paths are taken
// from the current working directory. The directory must already exist; an
// empty value means os.TempDir() and is returned unchanged.
func ResolveTempRoot(root string) (string, error) {
	if root == "" {
		return "", nil
	}

	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}

	dir, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(dir); err != nil {
		return "", err
	} else if !info.IsDir() {
		return "", &os.PathError{Op: "tmp-root", Path: dir, Err: os.ErrInvalid}
	}

	return dir, nil
}
