// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	launchCall struct {
		handle any
		mode   Mode
	}

	recordingLauncher struct {
		calls []launchCall
	}

	staticProvider struct {
		configs  []Configuration
		err      error
		projects []Project
	}

	namedProject string

	projectTable map[string]Project
)

var errUnknownProject = errors.New("project not found")

func (l *recordingLauncher) Launch(_ context.Context, handle any, mode Mode) {
	l.calls = append(l.calls, launchCall{handle: handle, mode: mode})
}

func (p *staticProvider) Configurations(_ context.Context, project Project) ([]Configuration, error) {
	p.projects = append(p.projects, project)
	return p.configs, p.err
}

func (p namedProject) ProjectName() string { return string(p) }

func (t projectTable) ResolveProject(_ context.Context, name string) (Project, error) {
	if p, ok := t[name]; ok {
		return p, nil
	}
	return nil, errUnknownProject
}

func configsNamed(names ...string) []Configuration {
	configs := make([]Configuration, 0, len(names))
	for i, name := range names {
		configs = append(configs, Configuration{Name: name, Handle: i})
	}
	return configs
}

func TestList(t *testing.T) {
	t.Parallel()

	configs := configsNamed("cfg0", "cfg1")

	assert.Equal(t, "cfg0\ncfg1\n", List(configs, false))
	assert.Equal(t, "0  : cfg0\n1  : cfg1\n", List(configs, true))
	assert.Empty(t, List(nil, true))
	assert.Empty(t, List(nil, false))
}

func TestList_WideIndicesAndOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 1001)
	for i := range 1001 {
		names = append(names, "z"+strconv.Itoa(1000-i))
	}
	lines := strings.Split(strings.TrimSuffix(List(configsNamed(names...), true), "\n"), "\n")

	require.Len(t, lines, 1001)
	assert.Equal(t, "0  : z1000", lines[0])
	assert.Equal(t, "99 : z901", lines[99])
	assert.Equal(t, "100: z900", lines[100])
	assert.Equal(t, "1000: z0", lines[1000])
}

func TestResolve_Examples(t *testing.T) {
	t.Parallel()

	configs := configsNamed("build", "build-debug", "test")

	tests := []struct {
		selector string
		kind     ResultKind
		want     string
	}{
		{selector: "2", kind: KindResolved, want: "test"},
		{selector: "0", kind: KindResolved, want: "build"},
		{selector: "+1", kind: KindResolved, want: "build-debug"},
		{selector: "build", kind: KindAmbiguous},
		{selector: "build-", kind: KindResolved, want: "build-debug"},
		{selector: "test", kind: KindResolved, want: "test"},
		{selector: "t", kind: KindResolved, want: "test"},
		{selector: "missing", kind: KindNotFound},
		{selector: "Build", kind: KindNotFound},
		{selector: " build", kind: KindNotFound},
		{selector: "", kind: KindAmbiguous},
		{selector: "3", kind: KindIndexOutOfRange},
		{selector: "-1", kind: KindIndexOutOfRange},
		{selector: "99999999999999999999999", kind: KindIndexOutOfRange},
		{selector: "1.0", kind: KindNotFound},
		{selector: "2x", kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			got := Resolve(configs, tt.selector)
			require.Equal(t, tt.kind, got.Kind)
			if tt.kind == KindResolved {
				assert.Equal(t, tt.want, got.Configuration.Name)
			}
		})
	}
}

func TestResolve_IndexTakesPriorityOverName(t *testing.T) {
	t.Parallel()

	configs := configsNamed("3", "alpha")

	got := Resolve(configs, "1")
	require.True(t, got.OK())
	assert.Equal(t, "alpha", got.Configuration.Name)

	got = Resolve(configs, "3")
	assert.Equal(t, KindIndexOutOfRange, got.Kind, "integer selector must not fall through to prefix matching")
}

func TestResolve_EmptyConfigurations(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindIndexOutOfRange, Resolve(nil, "0").Kind)
	assert.Equal(t, KindNotFound, Resolve(nil, "a").Kind)
	assert.Equal(t, KindNotFound, Resolve(nil, "").Kind)
}

func TestResolve_SingleConfigurationEmptySelector(t *testing.T) {
	t.Parallel()

	got := Resolve(configsNamed("only"), "")
	require.True(t, got.OK())
	assert.Equal(t, "only", got.Configuration.Name)
}

func TestResolve_IndexProperties(t *testing.T) {
	t.Parallel()

	configs := configsNamed("a", "b", "c", "d", "e")
	for i := range configs {
		got := Resolve(configs, strconv.Itoa(i))
		require.True(t, got.OK(), "index %d", i)
		assert.Equal(t, configs[i], got.Configuration)
	}

	for _, i := range []int{-100, -5, -1, 5, 6, 1 << 20} {
		assert.Equal(t, KindIndexOutOfRange, Resolve(configs, strconv.Itoa(i)).Kind, "index %d", i)
	}
}

func TestResolve_NonIntegerNeverOutOfRange(t *testing.T) {
	t.Parallel()

	configs := configsNamed("app", "apple", "banana", "1st", "-x")
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("ab1-+ .xpnl")

	for range 2000 {
		n := rng.IntN(5)
		var sb strings.Builder
		for range n {
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
		selector := sb.String()
		if _, err := strconv.ParseInt(selector, 10, 64); err == nil {
			continue
		}

		got := Resolve(configs, selector)
		assert.NotEqual(t, KindIndexOutOfRange, got.Kind, "selector %q", selector)
		assert.NotEqual(t, KindInvalidArgs, got.Kind, "selector %q", selector)
	}
}

func TestResolve_AmbiguityIsOrderIndependent(t *testing.T) {
	t.Parallel()

	names := []string{"serve", "server", "service", "test", "tester", "lint"}
	selectors := []string{"serv", "server", "test", "t", "l", "x", "se", "service"}
	rng := rand.New(rand.NewPCG(1, 2))

	for _, selector := range selectors {
		want := Resolve(configsNamed(names...), selector).Kind
		for range 50 {
			shuffled := append([]string(nil), names...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			got := Resolve(configsNamed(shuffled...), selector).Kind
			assert.Equal(t, want, got, "selector %q over %v", selector, shuffled)
		}
	}
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("resolved launches once", func(t *testing.T) {
		t.Parallel()

		launcher := &recordingLauncher{}
		cfg := Configuration{Name: "server", Handle: "handle-1"}

		out := Dispatch(context.Background(), Resolved(cfg), ModeDebug, launcher)

		assert.Equal(t, "server Started", out)
		require.Len(t, launcher.calls, 1)
		assert.Equal(t, launchCall{handle: "handle-1", mode: ModeDebug}, launcher.calls[0])
	})

	for _, kind := range []ResultKind{KindIndexOutOfRange, KindAmbiguous, KindNotFound, KindInvalidArgs} {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			launcher := &recordingLauncher{}
			out := Dispatch(context.Background(), Result{Kind: kind}, ModeRun, launcher)

			assert.Equal(t, Message(kind), out)
			assert.True(t, IsErrorMessage(out))
			assert.Empty(t, launcher.calls)
		})
	}
}

func TestMessages_AreDistinct(t *testing.T) {
	t.Parallel()

	seen := map[string]ResultKind{}
	for _, kind := range []ResultKind{KindIndexOutOfRange, KindAmbiguous, KindNotFound, KindInvalidArgs} {
		msg := Message(kind)
		require.NotEmpty(t, msg)
		require.True(t, strings.HasPrefix(msg, "Error: "), msg)
		if prev, dup := seen[msg]; dup {
			t.Fatalf("%s and %s share message %q", prev, kind, msg)
		}
		seen[msg] = kind
	}
	assert.Empty(t, Message(KindResolved))
	assert.False(t, IsErrorMessage("build Started"))
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	newServices := func() (Services, *staticProvider, *recordingLauncher) {
		provider := &staticProvider{configs: configsNamed("build", "build-debug", "test")}
		launcher := &recordingLauncher{}
		return Services{
			Provider: provider,
			Projects: projectTable{"api": namedProject("api")},
			Launcher: launcher,
		}, provider, launcher
	}

	t.Run("list bypasses resolver", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{List: true, Indices: true, Args: []string{"a", "b"}})

		require.NoError(t, err)
		assert.Equal(t, "0  : build\n1  : build-debug\n2  : test\n", out)
		assert.Empty(t, launcher.calls)
	})

	t.Run("indices without list is ignored", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{Indices: true, Args: []string{"test"}})

		require.NoError(t, err)
		assert.Equal(t, "test Started", out)
		require.Len(t, launcher.calls, 1)
		assert.Equal(t, ModeRun, launcher.calls[0].mode)
	})

	t.Run("no selector", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{})

		require.NoError(t, err)
		assert.Equal(t, MessageInvalidArgs, out)
		assert.Empty(t, launcher.calls)
	})

	t.Run("two selectors", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{Args: []string{"build", "test"}})

		require.NoError(t, err)
		assert.Equal(t, MessageInvalidArgs, out)
		assert.Empty(t, launcher.calls)
	})

	t.Run("debug by index", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{Debug: true, Args: []string{"1"}})

		require.NoError(t, err)
		assert.Equal(t, "build-debug Started", out)
		require.Len(t, launcher.calls, 1)
		assert.Equal(t, launchCall{handle: 1, mode: ModeDebug}, launcher.calls[0])
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		t.Parallel()

		svc, _, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{Args: []string{"build"}})

		require.NoError(t, err)
		assert.Equal(t, MessageAmbiguous, out)
		assert.Empty(t, launcher.calls)
	})

	t.Run("project is passed to provider", func(t *testing.T) {
		t.Parallel()

		svc, provider, _ := newServices()
		_, err := Invoke(context.Background(), svc, Request{List: true, Project: "api"})

		require.NoError(t, err)
		require.Len(t, provider.projects, 1)
		assert.Equal(t, "api", provider.projects[0].ProjectName())
	})

	t.Run("no project means unscoped", func(t *testing.T) {
		t.Parallel()

		svc, provider, _ := newServices()
		_, err := Invoke(context.Background(), svc, Request{List: true})

		require.NoError(t, err)
		require.Len(t, provider.projects, 1)
		assert.Nil(t, provider.projects[0])
	})

	t.Run("project not found propagates unchanged", func(t *testing.T) {
		t.Parallel()

		svc, provider, launcher := newServices()
		out, err := Invoke(context.Background(), svc, Request{Project: "web", Args: []string{"test"}})

		assert.Empty(t, out)
		assert.Same(t, errUnknownProject, err)
		assert.Empty(t, provider.projects)
		assert.Empty(t, launcher.calls)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		svc, provider, _ := newServices()
		provider.err = boom

		_, err := Invoke(context.Background(), svc, Request{Args: []string{"test"}})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing provider", func(t *testing.T) {
		t.Parallel()

		_, err := Invoke(context.Background(), Services{}, Request{List: true})
		assert.ErrorIs(t, err, ErrMissingService)
	})
}

func TestMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ModeRun, ModeFromDebug(false))
	assert.Equal(t, ModeDebug, ModeFromDebug(true))
	assert.Equal(t, "run", ModeRun.String())
	assert.Equal(t, "debug", ModeDebug.String())

	for _, m := range []Mode{ModeRun, ModeDebug} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMode("profile")
	require.ErrorIs(t, err, ErrInvalidMode)
	var modeErr *InvalidModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, "profile", modeErr.Value)
}
