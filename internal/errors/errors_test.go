package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid worker list"},
			expected: "invalid worker list",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid worker count %d in %s", -3, "--workers"),
			expected: "invalid worker count -3 in --workers",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestSearchError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         SearchError
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "prefixes searcher name",
			err:         SearchError{Searcher: "parallel-8", Cause: ErrNoResult},
			expectedMsg: "parallel-8: " + ErrNoResult.Error(),
			checkIs:     ErrNoResult,
		},
		{
			name:        "bare cause without searcher",
			err:         SearchError{Cause: errors.New("boom")},
			expectedMsg: "boom",
		},
		{
			name:        "context errors stay visible",
			err:         SearchError{Searcher: "sequential", Cause: context.Canceled},
			expectedMsg: "sequential: context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if tt.err.Unwrap() != tt.err.Cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(tt.err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	var err error = TimeoutError{Operation: "suite", Limit: 30 * time.Second}
	if got, want := err.Error(), `operation "suite" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	var timeoutErr TimeoutError
	if !errors.As(SearchError{Searcher: "x", Cause: err}, &timeoutErr) {
		t.Fatal("errors.As should find TimeoutError through SearchError")
	}
	if timeoutErr.Limit != 30*time.Second {
		t.Errorf("expected Limit 30s, got %v", timeoutErr.Limit)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	var err error = ValidationError{Field: "workers", Message: "must be greater than zero"}
	if got, want := err.Error(), `validation error for "workers": must be greater than zero`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	wrapped := WrapError(err, "plan check failed")
	var validationErr ValidationError
	if !errors.As(wrapped, &validationErr) {
		t.Fatal("errors.As should find ValidationError through WrapError")
	}
	if validationErr.Field != "workers" {
		t.Errorf("expected Field %q, got %q", "workers", validationErr.Field)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("permission denied"),
			format:      "failed to write report",
			expectedMsg: "failed to write report: permission denied",
		},
		{
			name:        "preserves error chain",
			original:    ErrCandidateSpaceExhausted,
			format:      "lane %d",
			args:        []any{3},
			expectedMsg: "lane 3: " + ErrCandidateSpaceExhausted.Error(),
			checkIs:     ErrCandidateSpaceExhausted,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "search canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"timeout type", TimeoutError{Operation: "suite", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", SearchError{Searcher: "s", Cause: context.Canceled}, ExitErrorCanceled},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "workers", Message: "zero"}, ExitErrorConfig},
		{"no result", SearchError{Searcher: "p", Cause: ErrNoResult}, ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

type plainColors struct{}

func (plainColors) Red() string    { return "<red>" }
func (plainColors) Yellow() string { return "<yellow>" }
func (plainColors) Reset() string  { return "</>" }

func TestHandleSearchError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		colors   ColorProvider
		wantCode int
		contains []string
	}{
		{"nil error", nil, 0, nil, ExitSuccess, nil},
		{"timeout", context.DeadlineExceeded, 2 * time.Second, plainColors{}, ExitErrorTimeout, []string{"<yellow>Status: Timeout.</>", "after 2s"}},
		{"canceled", context.Canceled, 0, nil, ExitErrorCanceled, []string{"Status: Canceled."}},
		{"failure", SearchError{Searcher: "parallel-4", Cause: ErrNoResult}, 0, plainColors{}, ExitErrorGeneric, []string{"<red>Status: Failure.</>", "parallel-4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleSearchError(tt.err, tt.duration, &buf, tt.colors)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("expected no output for nil error, got %q", buf.String())
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
