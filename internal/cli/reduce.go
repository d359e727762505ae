package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/cart/internal/cart"
	"github.com/roach88/cart/internal/schema"
)

// ReduceOptions holds flags for the reduce command.
type ReduceOptions struct {
	*RootOptions
	Action string // action document path
	State  string // optional state document path
}

// ReduceResult is the JSON payload of a successful reduce.
type ReduceResult struct {
	State       cart.State `json:"state"`
	Fingerprint string     `json:"fingerprint"`
}

// NewReduceCommand creates the reduce command.
func NewReduceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReduceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reduce --action <file> [--state <file>]",
		Short: "Apply one action to a cart state",
		Long: `Apply a single action to a cart state and print the new state.

The action file holds exactly one {"type", "payload"} document. Without
--state the action is applied to an empty cart.

Exit codes:
  0 - Action applied
  1 - Action rejected by the reducer
  2 - Command error (unreadable or malformed files)

Examples:
  cart reduce --action add.json
  cart reduce --action quantity.yaml --state cart.json
  cart reduce --action add.json --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "action document (JSON or YAML)")
	cmd.Flags().StringVar(&opts.State, "state", "", "initial state document (JSON or YAML)")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

func runReduce(opts *ReduceOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	actions, err := schema.LoadActions(opts.Action)
	if err != nil {
		return readFailure(formatter, opts.Action, err)
	}
	if len(actions) != 1 {
		return fail(formatter, ExitCommandError, ErrCodeReadFailed,
			fmt.Sprintf("%s: expected exactly one action, found %d", opts.Action, len(actions)), nil)
	}

	state, err := loadInitialState(opts.State)
	if err != nil {
		return readFailure(formatter, opts.State, err)
	}

	env := actions[0]
	formatter.VerboseLog("Applying %s to %d line(s)", env.Type, state.Len())

	next, err := cart.Dispatch(state, env)
	if err != nil {
		return rejected(formatter, 0, env, err)
	}

	if formatter.IsJSON() {
		return formatter.Success(ReduceResult{State: next, Fingerprint: next.Fingerprint()})
	}
	return printState(formatter, next)
}

// loadInitialState returns the state at path, or an empty cart when path
// is empty.
func loadInitialState(path string) (cart.State, error) {
	if path == "" {
		return cart.NewState(), nil
	}
	return schema.LoadState(path)
}

func readFailure(f *OutputFormatter, path string, err error) error {
	code := ErrCodeReadFailed
	if errors.Is(err, fs.ErrNotExist) {
		code = ErrCodeNotFound
	}
	return fail(f, ExitCommandError, code, err.Error(), map[string]string{"path": path})
}

// rejected reports a reducer error. step is 1-based, or 0 for a single
// action.
func rejected(f *OutputFormatter, step int, env cart.Envelope, err error) error {
	code := string(cart.CodeOf(err))
	if code == "" {
		code = ErrCodeGeneric
	}
	details := map[string]any{"type": env.Type}
	if sku := env.SKU(); sku != "" {
		details["sku"] = sku
	}
	if step > 0 {
		details["step"] = step
	}
	return fail(f, ExitFailure, code, err.Error(), details)
}

func printState(f *OutputFormatter, state cart.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return f.Success(string(data))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
