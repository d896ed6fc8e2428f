// Package logging provides the zap logger shared by the tprint command.
//
// Logging is silent unless a level is passed to Initialize or set in the
// TPRINT_LOG_LEVEL environment variable. Output goes to stderr so that
// rendered text on stdout is never mixed with log lines.
package logging
