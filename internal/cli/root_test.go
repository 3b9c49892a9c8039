package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/nuance-coach/internal/adapters/backend"
	httpadapter "github.com/PabloGalante/nuance-coach/internal/adapters/http"
	"github.com/PabloGalante/nuance-coach/internal/adapters/stub"
	"github.com/PabloGalante/nuance-coach/internal/adapters/tui"
	"github.com/PabloGalante/nuance-coach/internal/app/flowkit/flowkittest"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// isolate runs the test in an empty directory with no config from the
// environment.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("NUANCE_CONFIG", "")
	t.Setenv("NUANCE_BACKEND_URL", "")
	t.Setenv("NUANCE_LOG_FILE", "")
	t.Cleanup(func() { observability.Init(io.Discard, "info") })
}

type tuiCall struct {
	deps  tui.Deps
	start navigation.Route
}

func fakeTUI(t *testing.T) *[]tuiCall {
	t.Helper()
	var calls []tuiCall
	orig := runTUI
	runTUI = func(_ context.Context, deps tui.Deps, start navigation.Route) error {
		calls = append(calls, tuiCall{deps: deps, start: start})
		return nil
	}
	t.Cleanup(func() { runTUI = orig })
	return &calls
}

func TestRootOpensRouteAgainstBackend(t *testing.T) {
	isolate(t)
	calls := fakeTUI(t)

	root := NewRoot()
	root.SetArgs([]string{
		"--backend", "http://coach.test:9000/",
		"--route", "/reply?text=Hoi&goal=Afspraak+maken",
	})
	require.NoError(t, root.Execute())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, navigation.PageReply, call.start.Page)
	assert.Equal(t, navigation.ReplyParams{Text: "Hoi", Goal: "Afspraak maken"}, call.start.ReplyParams())

	client, ok := call.deps.Analyzer.(*backend.Client)
	require.True(t, ok)
	assert.Equal(t, "http://coach.test:9000", client.BaseURL())
	assert.NotNil(t, call.deps.Clipboard)
}

func TestRootUsesEnvBackend(t *testing.T) {
	isolate(t)
	t.Setenv("NUANCE_BACKEND_URL", "https://coach.example")
	calls := fakeTUI(t)

	root := NewRoot()
	root.SetArgs([]string{})
	require.NoError(t, root.Execute())

	require.Len(t, *calls, 1)
	assert.Equal(t, navigation.PageHome, (*calls)[0].start.Page)
	assert.Equal(t, "https://coach.example", (*calls)[0].deps.Analyzer.(*backend.Client).BaseURL())
}

func TestRootRejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"unknown route": {"--route", "/settings"},
		"bad backend":   {"--backend", "ftp://coach.test"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			calls := fakeTUI(t)

			root := NewRoot()
			root.SetArgs(args)
			root.SetErr(io.Discard)
			assert.Error(t, root.Execute())
			assert.Empty(t, *calls)
		})
	}
}

func TestRootWritesLogFile(t *testing.T) {
	isolate(t)
	fakeTUI(t)
	path := filepath.Join(t.TempDir(), "nuance.log")

	root := NewRoot()
	root.SetArgs([]string{"--log-file", path})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "starting tui")
}

func TestSmokeAgainstStub(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(httpadapter.NewServer(stub.NewAnalyzer(0), httpadapter.Options{}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	root := NewRoot()
	root.SetArgs([]string{"smoke", "--backend", srv.URL})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "✓ interpret")
	assert.Contains(t, out.String(), "✓ replies: 3 antwoorden")
	assert.Contains(t, out.String(), "✓ style: 3 varianten")
}

func TestSmokeReportsFailures(t *testing.T) {
	analyzer := &flowkittest.Analyzer{
		InterpretFunc: func(context.Context, string) (*domain.Interpretation, error) {
			return nil, &domain.APIError{Status: domain.StatusUnreachable, Message: domain.UnreachableMessage}
		},
		RepliesFunc: func(context.Context, string, string) (*domain.ReplyOptions, error) {
			return nil, errors.New("boom")
		},
	}

	var out bytes.Buffer
	err := runSmoke(context.Background(), &out, analyzer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")

	assert.Contains(t, out.String(), "✗ interpret: "+domain.UnreachableMessage)
	assert.Contains(t, out.String(), "✗ replies: boom")
	assert.Contains(t, out.String(), "✓ style: 0 varianten")
}
