package cmd

import (
	logger "github.com/trusteetool/trustee/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

func init() {
	for _, c := range []*cobra.Command{DrawCmd, UnsealCmd} {
		c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
		c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
		c.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		}
	}
}

// Helper functions for testing

// GetDrawCmd returns the DrawCmd for testing.
func GetDrawCmd() *cobra.Command {
	return DrawCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetDrawCommandState()
	resetUnsealCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
