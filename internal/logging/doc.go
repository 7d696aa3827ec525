// Package logger provides structured logging for Trustee CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only user-facing warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()            // Shown with --verbose or --debug
//	Logger.Debugf()           // Shown only with --debug
//	Logger.Warnf()            // Shown with --verbose or --debug
//	Logger.WarnfUser()        // User-facing warnings (always shown)
//	Logger.Errorf()           // Always shown
//	Logger.ErrorfAndReturn()  // Logs and returns the error
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Enrolled %d participants", count)
//
// Commands typically create a logger in their PersistentPreRun and
// pass it to internal functions.
package logger
