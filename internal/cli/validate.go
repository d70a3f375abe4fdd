package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"daoforge/internal/compiler"
)

// ValidationResult holds validation results for every taxonomy in a
// directory.
type ValidationResult struct {
	Valid      bool                       `json:"valid"`
	Taxonomies []string                   `json:"taxonomies,omitempty"`
	Errors     []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <taxonomy-dir>",
		Short: "Validate CUE taxonomy definitions",
		Long: `Validate declarative CUE taxonomy definitions.

Checks syntax, operation-type vocabulary, rule positions, bundle
shapes, and occurrence bounds without touching a ledger or database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, err := LoadTaxonomies(dir)
	if err != nil {
		if loadErr, ok := err.(*LoadError); ok {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)

	var names []string
	var allErrors []compiler.ValidationError
	for _, spec := range loadResult.Specs {
		formatter.VerboseLog("Validating taxonomy: %s", spec.Name)
		names = append(names, spec.Name)
		allErrors = append(allErrors, compiler.Validate(spec)...)
	}

	if len(allErrors) > 0 {
		return outputValidationErrors(formatter, names, allErrors)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Taxonomies: names})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d taxonomy definition(s) valid\n", len(names))
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, names []string, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		if err := formatter.Error(errs[0].Code, errs[0].Message, ValidationResult{
			Valid:      false,
			Taxonomies: names,
			Errors:     errs,
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
