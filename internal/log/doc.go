// Package log provides a minimal leveled logger with colored level prefixes.
//
// Output goes to stdout except for errors, which go to stderr. Debug output
// is suppressed unless SetVerbose(true) has been called.
package log
