package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"daoforge/internal/compiler"
	"daoforge/internal/ledger"
)

// SequenceFile is the YAML document the check command consumes: the
// name of the taxonomy to check against and the ordered operation
// types of a candidate unit.
type SequenceFile struct {
	Taxonomy string   `yaml:"taxonomy"`
	Sequence []string `yaml:"sequence"`
}

// CheckResult holds the outcome of a sequence check.
type CheckResult struct {
	Taxonomy string   `json:"taxonomy"`
	Sequence []string `json:"sequence"`
	Valid    bool     `json:"valid"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <taxonomy-dir> <sequence.yaml>",
		Short: "Check an operation sequence against a taxonomy",
		Long: `Check whether an operation sequence conforms to a taxonomy.

The sequence file names the taxonomy and lists operation types in
order; the taxonomy is loaded from the CUE definitions in the
directory. Exit code 0 means the sequence conforms, 1 means it was
rejected.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runCheck(opts *RootOptions, dir, sequencePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	seq, err := loadSequenceFile(sequencePath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	loadResult, err := LoadTaxonomies(dir)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	var spec *compiler.Spec
	for _, candidate := range loadResult.Specs {
		if candidate.Name == seq.Taxonomy {
			spec = candidate
			break
		}
	}
	if spec == nil {
		msg := fmt.Sprintf("taxonomy %q not found in %s", seq.Taxonomy, dir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	x, err := compiler.Build(spec)
	if err != nil {
		_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	types := make([]ledger.OperationType, len(seq.Sequence))
	for i, t := range seq.Sequence {
		types[i] = ledger.OperationType(t)
	}

	result := CheckResult{
		Taxonomy: seq.Taxonomy,
		Sequence: seq.Sequence,
		Valid:    x.Validate(types),
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ sequence conforms to %s\n", result.Taxonomy)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ sequence rejected by %s\n", result.Taxonomy)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "sequence rejected")
	}
	return nil
}

func loadSequenceFile(path string) (*SequenceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence file: %w", err)
	}

	var seq SequenceFile
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse sequence file: %w", err)
	}
	if seq.Taxonomy == "" {
		return nil, fmt.Errorf("sequence file %s does not name a taxonomy", path)
	}
	if len(seq.Sequence) == 0 {
		return nil, fmt.Errorf("sequence file %s has an empty sequence", path)
	}
	return &seq, nil
}
