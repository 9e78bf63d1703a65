// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/launchrun/launchrun/internal/config"
	"github.com/launchrun/launchrun/internal/launch"
	"github.com/launchrun/launchrun/internal/workspace"
)

type fakeRecorder struct {
	mu       sync.Mutex
	started  []Session
	finished []SessionResult
	err      error
}

func (f *fakeRecorder) RecordStart(_ context.Context, s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, s)
	return f.err
}

func (f *fakeRecorder) RecordFinish(_ context.Context, r SessionResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, r)
	return f.err
}

func virtualDef(t *testing.T, name, script string) *workspace.Definition {
	t.Helper()
	return &workspace.Definition{
		Name:    name,
		Project: "api",
		Source:  "/ws/api/.launchrun/launches.cue",
		Runner:  config.RunnerVirtual,
		Script:  script,
		Workdir: t.TempDir(),
	}
}

func launchOne(t *testing.T, def *workspace.Definition, mode launch.Mode, opts Options) (SessionResult, string) {
	t.Helper()

	var stdout bytes.Buffer
	opts.Stdout = &stdout
	if opts.Environ == nil {
		opts.Environ = func() []string { return []string{"PATH=/usr/bin:/bin", "LAUNCHRUN_SESSION=inherited"} }
	}
	l := New(opts)
	l.Launch(context.Background(), def, mode)

	results := l.Wait()
	if len(results) != 1 {
		t.Fatalf("Wait() returned %d results, want 1", len(results))
	}
	return results[0], stdout.String()
}

func TestLaunch_VirtualSessionEnv(t *testing.T) {
	t.Parallel()

	def := virtualDef(t, "Api Server", `echo "$LAUNCHRUN_MODE|$LAUNCHRUN_CONFIGURATION|$LAUNCHRUN_PROJECT|$LAUNCHRUN_SESSION|$GREETING"`)
	def.Env = map[string]string{"GREETING": "hi"}

	res, out := launchOne(t, def, launch.ModeRun, Options{})
	if !res.Succeeded() {
		t.Fatalf("session failed: code=%d err=%v", res.ExitCode, res.Err)
	}

	fields := strings.Split(strings.TrimSpace(out), "|")
	if len(fields) != 5 {
		t.Fatalf("unexpected output %q", out)
	}
	if fields[0] != "run" || fields[1] != "Api Server" || fields[2] != "api" || fields[4] != "hi" {
		t.Errorf("output = %q", out)
	}
	if fields[3] != res.ID.String() {
		t.Errorf("LAUNCHRUN_SESSION = %q, want %s", fields[3], res.ID)
	}
	if res.Name != "Api Server" || res.Project != "api" || res.Runner != config.RunnerVirtual {
		t.Errorf("session = %+v", res.Session)
	}
	if res.FinishedAt.Before(res.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}
}

func TestLaunch_DebugMode(t *testing.T) {
	t.Parallel()

	t.Run("debug script preferred", func(t *testing.T) {
		t.Parallel()

		def := virtualDef(t, "Server", `echo run "$LEVEL"`)
		def.Env = map[string]string{"LEVEL": "info"}
		def.Debug = &workspace.DebugSpec{Script: `echo debug "$LEVEL" "$LAUNCHRUN_MODE"`, Env: map[string]string{"LEVEL": "trace"}}

		_, out := launchOne(t, def, launch.ModeDebug, Options{})
		if strings.TrimSpace(out) != "debug trace debug" {
			t.Errorf("output = %q", out)
		}

		_, out = launchOne(t, def, launch.ModeRun, Options{})
		if strings.TrimSpace(out) != "run info" {
			t.Errorf("run output = %q", out)
		}
	})

	t.Run("debug env without debug command", func(t *testing.T) {
		t.Parallel()

		def := virtualDef(t, "Server", `echo "$LEVEL"`)
		def.Env = map[string]string{"LEVEL": "info"}
		def.Debug = &workspace.DebugSpec{Env: map[string]string{"LEVEL": "trace"}}

		_, out := launchOne(t, def, launch.ModeDebug, Options{})
		if strings.TrimSpace(out) != "trace" {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("virtual tracing", func(t *testing.T) {
		t.Parallel()

		def := virtualDef(t, "Server", `echo traced`)
		var stderr bytes.Buffer

		res, out := launchOne(t, def, launch.ModeDebug, Options{Stderr: &stderr})
		if !res.Succeeded() {
			t.Fatalf("session failed: %v", res.Err)
		}
		if strings.TrimSpace(out) != "traced" {
			t.Errorf("output = %q", out)
		}
		if !strings.Contains(stderr.String(), "echo traced") {
			t.Errorf("expected xtrace on stderr, got %q", stderr.String())
		}
	})
}

func TestLaunch_ExitStatus(t *testing.T) {
	t.Parallel()

	res, _ := launchOne(t, virtualDef(t, "Fail", "exit 3"), launch.ModeRun, Options{})
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	var ese *ExitStatusError
	if !errors.As(res.Err, &ese) || ese.Code != 3 {
		t.Errorf("Err = %v, want *ExitStatusError{3}", res.Err)
	}
	if res.Succeeded() {
		t.Error("Succeeded() = true for exit 3")
	}
}

func TestLaunch_ScriptParseError(t *testing.T) {
	t.Parallel()

	res, _ := launchOne(t, virtualDef(t, "Broken", "if then fi ("), launch.ModeRun, Options{})
	if res.Err == nil || !strings.Contains(res.Err.Error(), "parse") {
		t.Errorf("Err = %v, want a parse error", res.Err)
	}
}

func TestLaunch_UnsupportedHandle(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	l := New(Options{Recorder: rec})
	l.Launch(context.Background(), "not a definition", launch.ModeRun)

	results := l.Wait()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !errors.Is(results[0].Err, ErrUnsupportedHandle) {
		t.Errorf("Err = %v, want ErrUnsupportedHandle", results[0].Err)
	}
	if len(rec.started) != 0 || len(rec.finished) != 1 {
		t.Errorf("recorder saw %d starts and %d finishes, want 0 and 1", len(rec.started), len(rec.finished))
	}
}

func TestLaunch_Recorder(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	res, _ := launchOne(t, virtualDef(t, "Quick", "true"), launch.ModeRun, Options{Recorder: rec})

	if len(rec.started) != 1 || rec.started[0].ID != res.ID {
		t.Errorf("started = %+v", rec.started)
	}
	if len(rec.finished) != 1 || rec.finished[0].ID != res.ID || !rec.finished[0].Succeeded() {
		t.Errorf("finished = %+v", rec.finished)
	}
}

func TestLaunch_RecorderErrorsDoNotFailSession(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{err: errors.New("disk full")}
	res, _ := launchOne(t, virtualDef(t, "Quick", "true"), launch.ModeRun, Options{Recorder: rec})
	if !res.Succeeded() {
		t.Errorf("session failed: %v", res.Err)
	}
}

func TestLaunch_ManySessions(t *testing.T) {
	t.Parallel()

	l := New(Options{Environ: func() []string { return nil }})
	for _, name := range []string{"a", "b", "c", "d"} {
		l.Launch(context.Background(), virtualDef(t, name, "true"), launch.ModeRun)
	}

	results := l.Wait()
	var got []string
	ids := map[string]bool{}
	for _, r := range results {
		got = append(got, r.Name)
		ids[r.ID.String()] = true
	}
	slices.Sort(got)
	if !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("names = %v", got)
	}
	if len(ids) != 4 {
		t.Errorf("session IDs are not unique: %v", ids)
	}
}

func TestLaunch_Native(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
	t.Parallel()

	def := &workspace.Definition{
		Name:    "Native",
		Runner:  config.RunnerNative,
		Command: []string{"sh", "-c", `echo "$LAUNCHRUN_MODE $LAUNCHRUN_CONFIGURATION"; exit 2`},
		Workdir: t.TempDir(),
	}

	res, out := launchOne(t, def, launch.ModeDebug, Options{Environ: func() []string { return nil }})
	if strings.TrimSpace(out) != "debug Native" {
		t.Errorf("output = %q", out)
	}
	if res.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", res.ExitCode)
	}
}

func TestLaunch_NativeMissingProgram(t *testing.T) {
	t.Parallel()

	def := &workspace.Definition{
		Name:    "Ghost",
		Runner:  config.RunnerNative,
		Command: []string{"launchrun-does-not-exist-4b1d"},
		Workdir: t.TempDir(),
	}
	res, _ := launchOne(t, def, launch.ModeRun, Options{})
	if res.Err == nil || res.ExitCode == 0 {
		t.Errorf("expected a start failure, got code=%d err=%v", res.ExitCode, res.Err)
	}
}

func TestBuildEnv(t *testing.T) {
	t.Parallel()

	got := buildEnv(
		[]string{"HOME=/home/u", "LAUNCHRUN_MODE=run", "PATH=/bin"},
		map[string]string{"B": "2", "A": "1"},
	)
	want := []string{"HOME=/home/u", "PATH=/bin", "A=1", "B=2"}
	if !slices.Equal(got, want) {
		t.Errorf("buildEnv() = %v, want %v", got, want)
	}
}
