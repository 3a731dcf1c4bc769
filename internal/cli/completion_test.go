package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{
			"complete -F _hashrace_completions hashrace",
			"--workers",
			"--skip-naive",
			`compgen -W "bash zsh fish"`,
			`--output|-o)`,
			`compgen -f`,
		}},
		{"zsh", []string{
			"#compdef hashrace",
			"'--skip-naive[Skip the single-threaded baseline]'",
			"'(-v --verbose)'{-v,--verbose}'[Print per-run details]'",
			":level:(debug info warn error disabled)",
			":file:_files",
		}},
		{"fish", []string{
			"complete -c hashrace -f",
			"complete -c hashrace -s d -l details -d 'Print the comparison table'",
			"-l completion -d 'Print a completion script' -xa 'bash zsh fish'",
			"-s o -l output -d 'Write a YAML report' -rF",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, GenerateCompletion(&buf, tt.shell, "hashrace"))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestGenerateCompletionCoversEveryFlag(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish"} {
		var buf bytes.Buffer
		require.NoError(t, GenerateCompletion(&buf, shell, "hashrace"))
		for _, f := range flagRegistry {
			assert.Contains(t, buf.String(), f.Long, "%s script lacks --%s", shell, f.Long)
		}
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "powershell", "hashrace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
	assert.Zero(t, buf.Len())
}

func TestShellIdent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hash_race_bin", shellIdent("hash-race.bin"))
	assert.True(t, strings.HasPrefix(bashCompletion("hash-race"), "# Bash completion script for hash-race"))
}
