package cli

import (
	"bytes"
	"context"
	"intentbot/app/config"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	di := do.New()
	t.Cleanup(func() {
		_ = di.Shutdown()
	})

	var out bytes.Buffer
	root := NewRootCommand(di)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestFlowCommand(t *testing.T) {
	out, err := execute(t, "flow", "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, "interpret --> dispatcher")
}

func TestFlowCommand_Unknown(t *testing.T) {
	_, err := execute(t, "flow", "divide")
	assert.ErrorContains(t, err, "unknown pipeline")
}

func TestCalcCommand_RequiresToken(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvToken, "")

	_, err := execute(t, "calc")
	assert.ErrorContains(t, err, "config load failed")
}
