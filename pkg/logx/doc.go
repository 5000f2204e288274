// Package logx configures recur's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller) and on stderr,
//     away from the scheduler report printed on stdout
//   - File output JSON-structured
package logx
