package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestComposeCommand(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "compose", "--config", "_testdata/compose/fedecompose.yaml", "--sort")
	require.NoError(t, err)

	assert.Contains(t, stdout, "directive @auth(role: String!) on FIELD_DEFINITION")
	assert.Contains(t, stdout, `me: User @auth(role: "user")`)
	assert.Contains(t, stdout, `reviews: [Review] @auth(role: "reader")`)
	assert.NotContains(t, stdout, "@cacheControl")

	assert.Contains(t, stderr, "INCONSISTENT_TYPE_SYSTEM_DIRECTIVE_REPEATABLE")
}

func TestComposeCommandExposeFlag(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "compose", "-c", "_testdata/compose/fedecompose.yaml", "--expose", "@cacheControl", "--hints-format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "directive @cacheControl(maxAge: Int) on")
	assert.NotContains(t, stdout, "repeatable")
	assert.Contains(t, stdout, "@cacheControl(maxAge: 30)")
	assert.Contains(t, stderr, "code: INCONSISTENT_TYPE_SYSTEM_DIRECTIVE_REPEATABLE")
	assert.Contains(t, stderr, "severity: hint")
}

func TestComposeCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing config",
			args: []string{"compose", "-c", "_testdata/compose/missing.yaml"},
			want: "missing.yaml",
		},
		{
			name: "unknown hints format",
			args: []string{"compose", "-c", "_testdata/compose/fedecompose.yaml", "--hints-format", "json"},
			want: "unknown hints format",
		},
		{
			name: "invalid exposure",
			args: []string{"compose", "-c", "_testdata/compose/fedecompose.yaml", "--expose", "cacheControl"},
			want: "cacheControl",
		},
		{
			name: "composition error",
			args: []string{"compose", "-c", "_testdata/compose/broken.yaml", "--expose", "@auth"},
			want: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, stdout)
		})
	}
}
