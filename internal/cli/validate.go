package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cart/internal/schema"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	State bool // validate as a state document instead of actions
}

// ValidationResult holds validation results.
type ValidationResult struct {
	File   string                   `json:"file"`
	Kind   string                   `json:"kind"`
	Valid  bool                     `json:"valid"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document against the cart schema",
		Long: `Validate an action or state document against the embedded CUE schema
without applying it.

Action documents may hold one action or a list. Use --state to check a
state document.

Exit codes:
  0 - Document is valid
  1 - Document has schema violations
  2 - Command error (unreadable file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.State, "state", false, "validate a state document")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	kind := schema.KindActions
	if opts.State {
		kind = schema.KindState
	}
	formatter.VerboseLog("Validating %s as %s", path, kind)

	violations, err := schema.ValidateFile(path, kind)
	if err != nil {
		return readFailure(formatter, path, err)
	}

	result := ValidationResult{
		File:   path,
		Kind:   kind.String(),
		Valid:  len(violations) == 0,
		Errors: violations,
	}

	if !result.Valid {
		msg := fmt.Sprintf("%s: %d schema violation(s)", path, len(violations))
		if !formatter.IsJSON() {
			w := formatter.GetErrWriter()
			for _, v := range violations {
				fmt.Fprintf(w, "  %s\n", v.Error())
			}
		}
		return fail(formatter, ExitFailure, ErrCodeInvalidDocument, msg, violations)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %s is a valid %s document", path, kind))
}
