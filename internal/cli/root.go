package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "comparedemo",
	Short:   "Drive the monolith vs. microservices comparison demo from the terminal",
	Version: version,
	Long: `comparedemo issues user, product and order calls against either the
monolith or the microservices deployment behind the demo proxy, and generates
fixed-rate order load while notifying a local scaling listener.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// reportedError marks an error that has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	err := RootCmd.Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (yaml, json or toml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Diagnostic log format (text or json)")
	flags.String("log-file", "", "Write diagnostic logs to this file instead of stderr")

	RootCmd.AddCommand(userCmd)
	RootCmd.AddCommand(productCmd)
	RootCmd.AddCommand(orderCmd)
	RootCmd.AddCommand(loadCmd)
	RootCmd.AddCommand(consoleCmd)
	RootCmd.AddCommand(serveCmd)
}
