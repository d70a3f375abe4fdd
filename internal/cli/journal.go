package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daoforge/internal/store"
)

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "journal <db-path> <organization>",
		Short: "List journaled executions for an organization",
		Long: `List every journaled execution for an organization in seq order.

Text output is one line per execution; JSON output includes the full
canonical unit of each execution.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runJournal(opts *RootOptions, dbPath, organization string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		msg := fmt.Sprintf("journal database not found: %s", dbPath)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	defer s.Close()

	records, err := s.ReadExecutions(cmd.Context(), organization)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(formatter.Writer, "no executions journaled for %s\n", organization)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s  %s\n",
			rec.Seq, rec.RecordedAt, rec.Descriptor, rec.ActorAddress)
		if opts.Verbose {
			fmt.Fprintf(formatter.Writer, "      token=%s\n", rec.AttemptToken)
		}
	}
	return nil
}
