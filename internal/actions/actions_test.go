package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/setup-orgflow/internal/config"
)

type testEnv struct {
	values map[string]string
	out    bytes.Buffer
}

func newTestRuntime(values map[string]string) (*Runtime, *testEnv) {
	if values == nil {
		values = map[string]string{}
	}
	te := &testEnv{values: values}
	r := New(Options{
		Env: config.MapEnv(te.values),
		Setenv: func(k, v string) error {
			te.values[k] = v
			return nil
		},
		Stdout: &te.out,
	})
	return r, te
}

func withDelimiter(t *testing.T, d string) {
	t.Helper()
	orig := newDelimiter
	newDelimiter = func() string { return d }
	t.Cleanup(func() { newDelimiter = orig })
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInput(t *testing.T) {
	r, _ := newTestRuntime(map[string]string{
		"INPUT_LICENSE-KEY":  "  abc \n",
		"INPUT_SOME_SETTING": "x",
	})
	require.Equal(t, "abc", r.Input("license-key"))
	require.Equal(t, "x", r.Input("some setting"))
	require.Empty(t, r.Input("stack-name"))
}

func TestBoolInput(t *testing.T) {
	r, _ := newTestRuntime(map[string]string{
		"INPUT_A": "True",
		"INPUT_B": "FALSE",
		"INPUT_C": "yes",
	})
	v, err := r.BoolInput("a", false)
	require.NoError(t, err)
	require.True(t, v)

	v, err = r.BoolInput("b", true)
	require.NoError(t, err)
	require.False(t, v)

	v, err = r.BoolInput("missing", true)
	require.NoError(t, err)
	require.True(t, v)

	_, err = r.BoolInput("c", false)
	require.ErrorContains(t, err, "'c'")
}

func TestSetOutputWritesCommandFile(t *testing.T) {
	withDelimiter(t, "EOF_X")
	path := filepath.Join(t.TempDir(), "output")
	r, te := newTestRuntime(map[string]string{EnvGitHubOutput: path})

	require.NoError(t, r.SetOutput("version", "3.2.0"))
	require.NoError(t, r.SetOutput("multi", "a\nb"))
	require.Equal(t, "version<<EOF_X\n3.2.0\nEOF_X\nmulti<<EOF_X\na\nb\nEOF_X\n", readFile(t, path))
	require.Empty(t, te.out.String())
}

func TestSetOutputRejectsDelimiterInValue(t *testing.T) {
	withDelimiter(t, "EOF_X")
	path := filepath.Join(t.TempDir(), "output")
	r, _ := newTestRuntime(map[string]string{EnvGitHubOutput: path})
	require.ErrorContains(t, r.SetOutput("version", "EOF_X"), "delimiter")
}

func TestSetOutputFallsBackToCommand(t *testing.T) {
	r, te := newTestRuntime(nil)
	require.NoError(t, r.SetOutput("version", "3.2.0\n"))
	require.Equal(t, "::set-output name=version::3.2.0%0A\n", te.out.String())
}

func TestAddPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path")
	r, te := newTestRuntime(map[string]string{
		EnvPath:       "/usr/bin",
		EnvGitHubPath: path,
	})

	require.NoError(t, r.AddPath("/toolcache/orgflow/3.2.0"))
	require.Equal(t, "/toolcache/orgflow/3.2.0"+string(os.PathListSeparator)+"/usr/bin", te.values[EnvPath])
	require.Equal(t, "/toolcache/orgflow/3.2.0\n", readFile(t, path))
}

func TestAddPathWithoutCommandFile(t *testing.T) {
	r, te := newTestRuntime(nil)
	require.NoError(t, r.AddPath("/opt/orgflow"))
	require.Equal(t, "/opt/orgflow", te.values[EnvPath])
	require.Equal(t, "::add-path::/opt/orgflow\n", te.out.String())
}

func TestExportVariable(t *testing.T) {
	withDelimiter(t, "D")
	path := filepath.Join(t.TempDir(), "env")
	r, te := newTestRuntime(map[string]string{EnvGitHubEnv: path})

	require.NoError(t, r.ExportVariable("ORGFLOW_LOGLEVEL", "Debug"))
	require.Equal(t, "Debug", te.values["ORGFLOW_LOGLEVEL"])
	require.Equal(t, "ORGFLOW_LOGLEVEL<<D\nDebug\nD\n", readFile(t, path))
}

func TestWorkflowCommands(t *testing.T) {
	r, te := newTestRuntime(nil)
	r.Group("Install")
	r.Debug("50% done")
	r.Warning("careful")
	r.Error("line1\nline2")
	r.SetSecret("s3cr3t")
	r.SetSecret("")
	r.EndGroup()

	require.Equal(t, ""+
		"::group::Install\n"+
		"::debug::50%25 done\n"+
		"::warning::careful\n"+
		"::error::line1%0Aline2\n"+
		"::add-mask::s3cr3t\n"+
		"::endgroup::\n", te.out.String())
}

func TestFormatCommandEscapesProperties(t *testing.T) {
	got := formatCommand("set-output", map[string]string{"name": "a:b,c"}, "v")
	require.Equal(t, "::set-output name=a%3Ab%2Cc::v", got)
}

func TestIsDebug(t *testing.T) {
	r, _ := newTestRuntime(map[string]string{config.EnvRunnerDebug: "1"})
	require.True(t, r.IsDebug())
	r, _ = newTestRuntime(nil)
	require.False(t, r.IsDebug())
}
