package harness

import "daoforge/internal/ledger"

// Scenario defines a conformance test scenario: an organization
// configuration, a cast of identities, and a sequence of contract
// executions with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are keyed
	// by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Organization is the stable organization identifier.
	Organization string `yaml:"organization"`

	// Revision is the protocol revision tag.
	Revision int `yaml:"revision"`

	// Agreement is the agreement state the scenario starts from:
	// "confirmed" seeds the ledger fake with a valid agreement record,
	// "none" (or empty) starts before any agreement exists.
	Agreement string `yaml:"agreement,omitempty"`

	// Operators is the synchronized operator set, by address.
	Operators []string `yaml:"operators,omitempty"`

	// Metadata is the synchronized target-account metadata.
	Metadata map[string]string `yaml:"metadata,omitempty"`

	// Asset is the synchronized governance asset, if any.
	Asset *AssetSpec `yaml:"asset,omitempty"`

	// Target is the organization's deterministic target identity.
	Target IdentitySpec `yaml:"target"`

	// Actors maps step actor names to identities. The name "target"
	// is reserved and resolves to Target.
	Actors map[string]IdentitySpec `yaml:"actors,omitempty"`

	// Steps is the ordered list of contract executions.
	Steps []Step `yaml:"steps"`
}

// IdentitySpec is a public identity in scenario form.
type IdentitySpec struct {
	PublicKey string `yaml:"public_key"`
	Address   string `yaml:"address"`
}

// Identity converts the YAML form to a ledger identity.
func (s IdentitySpec) Identity() ledger.PublicIdentity {
	return ledger.PublicIdentity{
		PublicKey: s.PublicKey,
		Address:   ledger.Address(s.Address),
	}
}

// AssetSpec is the governance asset in scenario form.
type AssetSpec struct {
	ID           string `yaml:"id"`
	Supply       int64  `yaml:"supply"`
	Divisibility int64  `yaml:"divisibility"`
}

// Step is one contract execution in the scenario flow.
type Step struct {
	// Actor names the executing identity ("target" or a key in Actors).
	Actor string `yaml:"actor"`

	// Invoke is the contract dispatch name (e.g. "CreateDAO").
	Invoke string `yaml:"invoke"`

	// Args contains the contract arguments as a map.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect specifies the expected outcome. If nil, the step must
	// wrap successfully.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Outcome is "wrapped" or "failed".
	Outcome string `yaml:"outcome"`

	// ErrorCode is the expected structured error code for a failed
	// step (e.g. "OPERATION_FORBIDDEN"). If empty, any failure
	// satisfies a "failed" outcome.
	ErrorCode string `yaml:"error_code,omitempty"`

	// Sequence is the expected operation-type sequence of a wrapped
	// unit. If empty, the shape is not checked beyond the contract's
	// own taxonomy.
	Sequence []string `yaml:"sequence,omitempty"`

	// Descriptor is the expected descriptor of a wrapped unit.
	Descriptor string `yaml:"descriptor,omitempty"`
}

// Outcome constants.
const (
	OutcomeWrapped = "wrapped"
	OutcomeFailed  = "failed"
)

// Result is the outcome of running a scenario.
type Result struct {
	Scenario string
	Steps    []StepResult
}

// StepResult is the outcome of one step.
type StepResult struct {
	Invoke string
	Unit   *ledger.AtomicUnit // nil when the step failed
	Err    error              // nil when the step wrapped
}
