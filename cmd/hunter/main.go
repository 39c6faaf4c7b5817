// Package main provides the entry point for the hunter command-line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/hunter/internal/dispatch"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errInvalidCommand = errors.New("invalid command")
	errMissingAPIKey  = errors.New("API key is required")
)

// usageError marks a command-line mistake.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "hunter <search|find|verify> [api_key]",
	Short: "Command-line client for the Hunter email discovery API",
	Long: `hunter searches a domain for email addresses, finds the most likely address
of a person, or verifies that an address is deliverable.

Parameters come from flags, or from a CSV file (--file) with one request per
row. Single requests print tab-separated text; CSV input prints CSV output.

The API key is the first argument after the command, or HUNTER_API_KEY.

Example:
  hunter search $KEY --domain example.com --limit 5
  hunter find $KEY --domain example.com --first_name Jane --last_name Doe
  hunter verify --file emails.csv > results.csv`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Invalid command %s\n", args[0])
		return &usageError{err: fmt.Errorf("%w %q", errInvalidCommand, args[0])}
	},

	// Request flags belong to the subcommands. Let them through so an
	// unknown command is still reported by name.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var uerr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &uerr),
		errors.Is(err, dispatch.ErrInvalidRequest),
		errors.Is(err, dispatch.ErrMissingColumns):
		return exitUsage
	default:
		return exitFailure
	}
}

// alreadyReported is true for errors the dispatcher has printed itself.
func alreadyReported(err error) bool {
	return errors.Is(err, errInvalidCommand) ||
		errors.Is(err, dispatch.ErrInvalidRequest) ||
		errors.Is(err, dispatch.ErrMissingColumns) ||
		errors.Is(err, dispatch.ErrRequestsFailed)
}

func run(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !alreadyReported(err) {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return exitCode(err)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
