// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chdir moves into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get cwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldCwd)
	})
}

func TestResolveTempRoot(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T) (in string, want string)
		wantErr  bool
		errIs    error
	}{
		{
			name: "empty_means_default",
			setupDir: func(t *testing.T) (string, string) {
				return "", ""
			},
		},
		{
			name: "absolute_path",
			setupDir: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				return dir, dir
			},
		},
		{
			name: "relative_path",
			setupDir: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				chdir(t, filepath.Dir(dir))
				return filepath.Base(dir), dir
			},
		},
		{
			name: "dot_relative_path",
			setupDir: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				chdir(t, dir)
				return ".", dir
			},
		},
		{
			name: "home_relative_path",
			setupDir: func(t *testing.T) (string, string) {
				home := t.TempDir()
				t.Setenv("HOME", home)
				if err := os.Mkdir(filepath.Join(home, "smoke"), 0o755); err != nil {
					t.Fatalf("failed to create dir: %v", err)
				}
				return "~/smoke", filepath.Join(home, "smoke")
			},
		},
		{
			name: "nonexistent_directory",
			setupDir: func(t *testing.T) (string, string) {
				return "/nonexistent/path/that/does/not/exist", ""
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "file_not_directory",
			setupDir: func(t *testing.T) (string, string) {
				file := filepath.Join(t.TempDir(), "file.txt")
				if err := os.WriteFile(file, []byte("test"), 0o600); err != nil {
					t.Fatalf("failed to create temp file: %v", err)
				}
				return file, ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, want := tt.setupDir(t)

			got, err := ResolveTempRoot(in)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			assert.NoError(t, err)
			wantEval, _ := filepath.EvalSymlinks(want)
			gotEval, _ := filepath.EvalSymlinks(got)
			assert.Equal(t, wantEval, gotEval)
		})
	}
}
