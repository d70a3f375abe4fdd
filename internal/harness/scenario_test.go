package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalScenario = `
name: minimal
description: smallest valid scenario
organization: garden-collective
revision: 1
target:
  public_key: TARGET-KEY
  address: TARGET-ADDRESS
steps:
  - actor: target
    invoke: CreateAgreement
    args:
      agreementSecret: hunter2
      operators: [ALICE-ADDRESS]
`

func TestLoadScenarioMinimal(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Len(t, s.Steps, 1)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, minimalScenario+"\nstep: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step")
}

func TestLoadScenarioRejectsMissingName(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
description: nameless
organization: garden-collective
revision: 1
target: {public_key: K, address: A}
steps:
  - {actor: target, invoke: Vote}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenarioRejectsReservedActorName(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: bad
description: redefines target
organization: garden-collective
revision: 1
target: {public_key: K, address: A}
actors:
  target: {public_key: K2, address: A2}
steps:
  - {actor: target, invoke: Vote}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestLoadScenarioRejectsUnknownStepActor(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: bad
description: references a missing actor
organization: garden-collective
revision: 1
target: {public_key: K, address: A}
steps:
  - {actor: ghost, invoke: Vote}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown actor")
}

func TestLoadScenarioRejectsBadOutcome(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: bad
description: invalid expected outcome
organization: garden-collective
revision: 1
target: {public_key: K, address: A}
steps:
  - actor: target
    invoke: Vote
    expect:
      outcome: exploded
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown outcome")
}

func TestLoadScenarioRejectsBadAgreementState(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: bad
description: invalid agreement state
organization: garden-collective
revision: 1
agreement: maybe
target: {public_key: K, address: A}
steps:
  - {actor: target, invoke: Vote}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agreement")
}
