package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cart/internal/cart"
	"github.com/roach88/cart/internal/schema"
	"github.com/roach88/cart/internal/session"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	State  string // optional initial state document
	Verify bool   // replay a second time and compare fingerprints
}

// ReplayResult holds the replay result.
type ReplayResult struct {
	Session       string     `json:"session"`
	Steps         int        `json:"steps"`
	Fingerprint   string     `json:"fingerprint"`
	Verified      bool       `json:"verified"`
	Deterministic bool       `json:"deterministic"`
	Mismatch      int        `json:"mismatch,omitempty"`
	State         cart.State `json:"state"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <actions-file>",
		Short: "Replay an action log through a session",
		Long: `Dispatch every action in a document through a new session and report
the final state.

With --verify the recorded history is replayed from the initial state and
the fingerprint after every step is compared with the live run.

Exit codes:
  0 - All actions applied (and deterministic, with --verify)
  1 - An action was rejected or the replay diverged
  2 - Command error (unreadable or malformed files)

Examples:
  cart replay actions.yaml
  cart replay actions.json --state cart.json
  cart replay actions.json --verify --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "", "initial state document (JSON or YAML)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "verify the replay is deterministic")

	return cmd
}

func runReplay(opts *ReplayOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := commandContext(cmd)

	actions, err := schema.LoadActions(path)
	if err != nil {
		return readFailure(formatter, path, err)
	}
	initial, err := loadInitialState(opts.State)
	if err != nil {
		return readFailure(formatter, opts.State, err)
	}

	sess := session.New(
		session.WithInitialState(initial),
		session.WithLogger(opts.Logger(cmd.ErrOrStderr())),
	)
	formatter.VerboseLog("Session %s: replaying %d action(s) from %s", sess.ID(), len(actions), path)

	for i, env := range actions {
		if _, err := sess.Dispatch(ctx, env); err != nil {
			if cart.CodeOf(err) == "" {
				return WrapExitError(ExitCommandError, "replay interrupted", err)
			}
			return rejected(formatter, i+1, env, err)
		}
	}

	final := sess.State()
	result := ReplayResult{
		Session:       sess.ID(),
		Steps:         len(actions),
		Fingerprint:   final.Fingerprint(),
		Deterministic: true,
		State:         final,
	}

	if opts.Verify {
		v, err := sess.Verify(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "verify failed", err)
		}
		result.Verified = true
		result.Deterministic = v.Deterministic
		result.Mismatch = v.Mismatch
	}

	if !result.Deterministic {
		return fail(formatter, ExitFailure, ErrCodeNonDeterministic,
			fmt.Sprintf("replay diverged after %d action(s)", result.Mismatch), result)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Replayed %d action(s)\n", result.Steps)
	fmt.Fprintf(w, "Fingerprint: %s\n", result.Fingerprint)
	if result.Verified {
		fmt.Fprintln(w, "✓ Replay is deterministic")
	}
	return printState(formatter, final)
}
