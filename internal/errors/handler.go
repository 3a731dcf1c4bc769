package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used to highlight error output.
// A nil ColorProvider renders plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code it should produce.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleSearchError writes a diagnostic for a failed search and returns the
// matching exit code.
//
// Parameters:
//   - err: The error returned by the search.
//   - duration: How long the search ran before failing (0 if unknown).
//   - out: The writer for the diagnostic.
//   - colors: Optional color provider.
//
// Returns:
//   - int: The exit code, ExitSuccess when err is nil.
func HandleSearchError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Timeout.%s The search exceeded its time limit", yellow, reset)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled.%s The search was interrupted", yellow, reset)
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s %v", red, reset, err)
	}
	if duration > 0 {
		fmt.Fprintf(out, " after %s", duration)
	}
	fmt.Fprintln(out, ".")
	return code
}
