package commands_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/weft/cmd/weft/commands"
	"go.trai.ch/weft/internal/adapters/loader"
	"go.trai.ch/weft/internal/adapters/logger"
	"go.trai.ch/weft/internal/adapters/memo"
	"go.trai.ch/weft/internal/adapters/metadata"
	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/app"
	"go.trai.ch/weft/internal/build"
	"go.trai.ch/weft/internal/engine/eval"
)

const rigDef = `
version: {milestone: 1, major: 0}
plugs:
  - {name: scale, direction: in, type: number, default: 2}
  - {name: result, direction: out, type: number}
nodes:
  - name: add1
    kind: add
    values: {b: 40}
connections:
  - {from: scale, to: add1.a}
  - {from: add1.sum, to: result}
`

func newCLI(t *testing.T) *commands.CLI {
	t.Helper()
	lg := logger.New()
	lg.SetOutput(io.Discard)
	meta := metadata.NewStore()
	source := loader.New(loader.FileResolver{}, lg, meta)
	engine := eval.New(memo.NewUnbounded(), metrics.Noop{})
	return commands.New(app.New(source, engine, meta, lg, metrics.Noop{}))
}

func writeDef(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rig.weft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rigDef), 0o600))
	return path
}

// execute runs the CLI with args and returns captured stdout.
func execute(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	cli.SetArgs(args)
	execErr := cli.Execute(context.Background())

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), execErr
}

func TestCommands_Eval(t *testing.T) {
	path := writeDef(t)

	out, err := execute(t, newCLI(t), "eval", path, "rig.result")
	require.NoError(t, err)
	assert.Equal(t, "42", strings.TrimSpace(out))
}

func TestCommands_EvalBadContextEntry(t *testing.T) {
	path := writeDef(t)

	_, err := execute(t, newCLI(t), "eval", path, "rig.result", "--context", "notkeyvalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestCommands_Inspect(t *testing.T) {
	path := writeDef(t)

	out, err := execute(t, newCLI(t), "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "add1 (add)")
	assert.Contains(t, out, ".scale [in]")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, newCLI(t), "version")
	require.NoError(t, err)
	assert.Equal(t, build.Version, strings.TrimSpace(out))
}

func TestCommands_UnknownCommand(t *testing.T) {
	_, err := execute(t, newCLI(t), "frobnicate")
	assert.Error(t, err)
}
