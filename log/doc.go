// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog], adding a Trace level below Debug.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("loaded", slog.String("name", "app"))
//
// The zero [Logger] discards everything. Packages that accept an optional
// logger store a Logger value and call it unconditionally.
//
// # Package-level logger
//
// Functions such as [Info] and [ErrorContext] write through a process-wide
// logger, reconfigured with [Config]:
//
//	log.Config(log.WithFormat(log.FormatJSON), log.WithTimeLayout("none"))
//
// Context-unaware variants use [DefaultContextProvider].
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. Text output may be colorized with
// [WithPretty].
package log
