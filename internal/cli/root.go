package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/runfor/internal/config"
	"github.com/Paintersrp/runfor/internal/signame"
	"github.com/Paintersrp/runfor/internal/supervisor"
	"github.com/Paintersrp/runfor/internal/timespec"
)

const longHelp = `Start COMMAND, and signal it if it is still running after DURATION.

DURATION is a non-negative number with an optional suffix: 's' for seconds
(the default), 'm' for minutes, 'h' for hours or 'd' for days. A duration of
0 disables the timeout and lets COMMAND run to completion.

SIGNAL is a number or one of TERM, INT, HUP, KILL, USR1, USR2; a SIG prefix
is accepted. Unrecognized names fall back to the default TERM.

Exit status is the command's own status, or: 124 when it timed out (unless
--preserve-status), 125 when runfor itself failed, 126 when the command was
found but could not be invoked, 127 when it was not found, 137 after an
escalated kill.`

// Execute runs the CLI entrypoint.
func Execute() {
	os.Exit(Main(os.Args[1:], os.Stdout, os.Stderr))
}

// Main parses args, supervises the command, and returns the program exit
// code. It is the testable seam behind Execute.
func Main(args []string, stdout, stderr io.Writer) int {
	var code int
	root := newRootCommand(&code)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "runfor: %v\n", err)
		return supervisor.ExitInternal
	}
	return code
}

func newRootCommand(code *int) *cobra.Command {
	var (
		killAfter  string
		signalName string
		preserve   bool
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "runfor [flags] DURATION COMMAND [ARG...]",
		Short: "Run a command with a deadline",
		Long:  longHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := config.FromEnv()

			path := configPath
			if path == "" {
				path = os.Getenv("RUNFOR_CONFIG")
			}
			if path != "" {
				loaded, err := config.LoadDefaults(path)
				if err != nil {
					return err
				}
				defaults = defaults.Merge(*loaded)
			}

			flags := cmd.Flags()
			if flags.Changed("signal") {
				defaults.Signal = signalName
			}
			if flags.Changed("kill-after") {
				defaults.KillAfter = killAfter
			}
			if flags.Changed("preserve-status") {
				defaults.PreserveStatus = &preserve
			}
			if flags.Changed("verbose") {
				defaults.Verbose = &verbose
			}

			duration, err := timespec.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			killDuration, err := defaults.KillAfterDuration()
			if err != nil {
				return fmt.Errorf("invalid kill-after: %w", err)
			}

			cfg := config.RunConfig{
				Duration:       duration,
				KillAfter:      killDuration,
				Signal:         signame.Resolve(defaults.Signal),
				PreserveStatus: defaults.PreserveStatus != nil && *defaults.PreserveStatus,
				Verbose:        defaults.Verbose != nil && *defaults.Verbose,
				Command:        args[1:],
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			*code = supervisor.Run(cmd.Context(), cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	// The first positional argument ends option parsing so the child's own
	// flag-like arguments pass through untouched.
	root.Flags().SetInterspersed(false)

	root.Flags().StringVarP(&killAfter, "kill-after", "k", "", "also send a KILL signal if COMMAND is still running this long after the initial signal")
	root.Flags().StringVarP(&signalName, "signal", "s", "", "signal to send on timeout, as a name or number")
	root.Flags().BoolVarP(&preserve, "preserve-status", "p", false, "return the exit status of COMMAND, not the timeout status")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "diagnose each signal sent to stderr")
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML defaults file (also RUNFOR_CONFIG)")

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}
