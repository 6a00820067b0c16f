// Package sl holds slog attribute helpers.
package sl

import "log/slog"

// Err returns the attribute used to log an error:
//
//	log.Error("failed to apply", sl.Err(err))
//
// A nil error is logged as an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
