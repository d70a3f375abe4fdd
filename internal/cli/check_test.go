package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSequenceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sequence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckAcceptsConformingSequence(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `
taxonomy: vote
sequence:
  - transfer
  - account_metadata
`)

	stdout, _, err := execute(t, "check", dir, seq)
	require.NoError(t, err)
	assert.Contains(t, stdout, "conforms")
}

func TestCheckRejectsNonConformingSequence(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `
taxonomy: vote
sequence:
  - account_metadata
  - transfer
`)

	stdout, _, err := execute(t, "check", dir, seq)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "rejected")
}

func TestCheckRepeatableBundle(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `
taxonomy: create-vote
sequence:
  - transfer
  - mosaic_definition
  - mosaic_supply
  - transfer
  - transfer
  - transfer
`)

	_, _, err := execute(t, "check", dir, seq)
	assert.NoError(t, err, "tail bundle repeats once per operator")
}

func TestCheckJSONOutput(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `
taxonomy: vote
sequence:
  - transfer
`)

	stdout, _, err := execute(t, "--format", "json", "check", dir, seq)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"valid":true`)
	assert.Contains(t, stdout, `"taxonomy":"vote"`)
}

func TestCheckUnknownTaxonomy(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `
taxonomy: missing
sequence:
  - transfer
`)

	_, _, err := execute(t, "check", dir, seq)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestCheckMalformedSequenceFile(t *testing.T) {
	dir := writeTaxonomyDir(t, validTaxonomyCUE)
	seq := writeSequenceFile(t, `sequence: []`)

	_, _, err := execute(t, "check", dir, seq)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
