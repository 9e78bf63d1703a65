// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustSetenv_Restores(t *testing.T) {
	const key = "LAUNCHRUN_TESTUTIL_VAR"
	restoreOuter := MustUnsetenv(t, key)
	defer restoreOuter()

	restore := MustSetenv(t, key, "value")
	if got := os.Getenv(key); got != "value" {
		t.Fatalf("Getenv() = %q, want value", got)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Error("variable should be unset after restore")
	}
}

func TestMustChdir_Restores(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	restore := MustChdir(t, dir)
	now, _ := os.Getwd()
	resolved, _ := filepath.EvalSymlinks(dir)
	nowResolved, _ := filepath.EvalSymlinks(now)
	if nowResolved != resolved {
		t.Errorf("Getwd() = %q, want %q", nowResolved, resolved)
	}
	restore()

	after, _ := os.Getwd()
	if after != before {
		t.Errorf("Getwd() after restore = %q, want %q", after, before)
	}
}

func TestMustWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	MustWriteFile(t, path, "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}
}
