// Package logging constructs the slog loggers used across squeeze and
// defines the shared attribute vocabulary, so every component reports the
// same field names for runs, titles, and files.
package logging
