// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration through UPDATE_BEACON_LOG_LEVEL or SetLevel,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Both binaries accept a context and extract the logger from it, so every
// entry of a run carries the command name and run identifier. Log output
// never touches stdout, which beacon-show reserves for the manifest itself.
package logger
