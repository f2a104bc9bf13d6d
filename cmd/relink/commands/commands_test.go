package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/cmd/relink/commands"
	"go.trai.ch/relink/internal/app"
	"go.trai.ch/relink/internal/build"
	"go.trai.ch/relink/internal/core/domain"
)

type mockApp struct {
	linkFunc   func(ctx context.Context, configPath string) (*app.LinkResult, error)
	listFunc   func(ctx context.Context, root, module string) ([]domain.ResourceEntry, error)
	verifyFunc func(ctx context.Context, root string, modules ...string) (*app.VerifyReport, error)
}

func (m *mockApp) Link(ctx context.Context, configPath string) (*app.LinkResult, error) {
	if m.linkFunc != nil {
		return m.linkFunc(ctx, configPath)
	}
	return &app.LinkResult{}, nil
}

func (m *mockApp) List(ctx context.Context, root, module string) ([]domain.ResourceEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, root, module)
	}
	return nil, nil
}

func (m *mockApp) Verify(ctx context.Context, root string, modules ...string) (*app.VerifyReport, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, root, modules...)
	}
	return &app.VerifyReport{}, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Link(t *testing.T) {
	t.Run("prints module results", func(t *testing.T) {
		var captured string
		mock := &mockApp{
			linkFunc: func(_ context.Context, configPath string) (*app.LinkResult, error) {
				captured = configPath
				return &app.LinkResult{
					Output:   "/out",
					Platform: domain.Platform{OS: "linux", Arch: "x64"},
					Digest:   "0123456789abcdef",
					Modules: []app.ModuleResult{
						{Name: "base", Lines: 4, Changed: true},
						{Name: "desktop", Lines: 1},
					},
				}, nil
			},
		}

		out, err := execute(t, mock, "link", "-c", "conf/relink.yaml")
		require.NoError(t, err)
		assert.Equal(t, "conf/relink.yaml", captured)
		assert.Equal(t,
			"base\t4 lines\tchanged\n"+
				"desktop\t1 lines\tunchanged\n"+
				"image /out (linux-x64) 0123456789abcdef\n",
			out)
	})

	t.Run("defaults to relink.yaml", func(t *testing.T) {
		var captured string
		mock := &mockApp{
			linkFunc: func(_ context.Context, configPath string) (*app.LinkResult, error) {
				captured = configPath
				return &app.LinkResult{}, nil
			},
		}

		_, err := execute(t, mock, "link")
		require.NoError(t, err)
		assert.Equal(t, domain.ConfigFileName, captured)
	})

	t.Run("returns error on link failure", func(t *testing.T) {
		mock := &mockApp{
			linkFunc: func(_ context.Context, _ string) (*app.LinkResult, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "link")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_List(t *testing.T) {
	var gotRoot, gotModule string
	mock := &mockApp{
		listFunc: func(_ context.Context, root, module string) ([]domain.ResourceEntry, error) {
			gotRoot, gotModule = root, module
			return []domain.ResourceEntry{
				{Module: "base", Path: "/base/bin/java", Type: domain.TypeNativeCmd},
				{Module: "base", Path: "/base/java/lang/Object.class", Type: domain.TypeClassOrResource},
			}, nil
		},
	}

	out, err := execute(t, mock, "ls", "base", "--image", "/img")
	require.NoError(t, err)
	assert.Equal(t, "/img", gotRoot)
	assert.Equal(t, "base", gotModule)
	assert.Equal(t,
		"native-cmd        /base/bin/java\n"+
			"class-or-resource /base/java/lang/Object.class\n",
		out)

	_, err = execute(t, mock, "ls")
	require.Error(t, err)
}

func TestCommands_Verify(t *testing.T) {
	var gotModules []string
	mock := &mockApp{
		verifyFunc: func(_ context.Context, _ string, modules ...string) (*app.VerifyReport, error) {
			gotModules = modules
			report := &app.VerifyReport{Modules: []app.ModuleReport{
				{Name: "base", Resources: 6, Digest: "abc"},
				{Name: "desktop", Err: domain.ErrMissingCatalog},
			}}
			return report, domain.Tag(domain.ErrVerifyFailed, "failed", 1)
		},
	}

	out, err := execute(t, mock, "verify", "-i", "/img", "base", "desktop")
	require.ErrorIs(t, err, domain.ErrVerifyFailed)
	assert.Equal(t, []string{"base", "desktop"}, gotModules)
	assert.Equal(t,
		"ok\tbase\t6 resources\tabc\n"+
			"FAIL\tdesktop\tmodule lacks its catalog\n",
		out)
}

func TestCommands_JSONLogs(t *testing.T) {
	var got *bool
	cli := commands.New(&mockApp{}, commands.WithLogFormat(func(json bool) { got = &json }))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"version", "--json-logs"})

	require.NoError(t, cli.Execute(context.Background()))
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "relink version "+build.Version)
}
