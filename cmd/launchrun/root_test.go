// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestRootCommand_Tree(t *testing.T) {
	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	root := NewRootCommand(app)

	for _, path := range [][]string{
		{"run"}, {"projects"}, {"history"}, {"completion"},
		{"config", "show"}, {"config", "path"}, {"config", "init"}, {"config", "dump"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %q not found: %v", strings.Join(path, " "), err)
		}
	}

	for _, name := range []string{"config", "verbose", "workspace", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s missing", name)
		}
	}

	run, _, _ := root.Find([]string{"run"})
	for _, f := range []struct{ name, short string }{
		{"list", "l"}, {"indices", "i"}, {"debug", "d"}, {"project", "p"},
	} {
		flag := run.Flags().Lookup(f.name)
		if flag == nil || flag.Shorthand != f.short {
			t.Errorf("run flag --%s/-%s missing", f.name, f.short)
		}
	}
}

func TestProjectsCommand(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "projects"); err != nil {
		t.Fatalf("projects returned error: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "api") || !strings.Contains(out, "web") {
		t.Errorf("projects output = %q", out)
	}
	if strings.Index(out, "api") > strings.Index(out, "web") {
		t.Errorf("projects not sorted: %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	env := newTestEnv(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		env.stdout.Reset()
		if err := env.run(t, "completion", shell); err != nil {
			t.Fatalf("completion %s returned error: %v", shell, err)
		}
		if !strings.Contains(env.stdout.String(), "launchrun") {
			t.Errorf("completion %s output lacks the program name", shell)
		}
	}

	if err := env.run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}
