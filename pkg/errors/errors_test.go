// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "directory_not_found",
			code:    errors.ErrDirectoryNotFound,
			message: "directory not found: /music",
			wantStr: "[DIRECTORY_NOT_FOUND] directory not found: /music",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrClassification, "name %q is not valid UTF-8", "caf\xe9")
	want := `name "caf\xe9" is not valid UTF-8`
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrMutation, "rename failed")

		if err.Code != errors.ErrMutation {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrMutation)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[MUTATION] rename failed: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrConflict, "target exists").
		WithDetail("source", "/music/a").
		WithDetail("target", "/music/b")

	if err.Details["source"] != "/music/a" {
		t.Errorf("WithDetail() source = %v, want %v", err.Details["source"], "/music/a")
	}

	if err.Details["target"] != "/music/b" {
		t.Errorf("WithDetail() target = %v, want %v", err.Details["target"], "/music/b")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrMutation, "error 1")
	err2 := errors.New(errors.ErrMutation, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with CurateError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrDirectoryNotFound, "not found"),
			code:     errors.ErrDirectoryNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrDirectoryNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrMutation, "denied"),
			code:     errors.ErrMutation,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrMutation,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrMutation,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrScan, "unreadable")); got != errors.ErrScan {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrScan)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "os_error_chain",
			err: errors.Wrap(&fs.PathError{Op: "rename", Path: "/a", Err: syscall.EEXIST},
				errors.ErrMutation, "rename failed"),
			want: syscall.EEXIST.Error(),
		},
		{
			name: "bare_curate_error",
			err:  errors.New(errors.ErrConflict, "target exists"),
			want: "target exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Reason(tt.err); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	scanErr := errors.Wrap(rootCause, errors.ErrScan, "cannot read directory")
	runErr := errors.Wrap(scanErr, errors.ErrInternal, "run failed")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(runErr, errors.ErrInternal) {
			t.Error("Top level should have ErrInternal code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var curateErr *errors.CurateError
		if stderrors.As(runErr.Unwrap(), &curateErr) {
			if !errors.IsErrorCode(curateErr, errors.ErrScan) {
				t.Error("Middle error should have ErrScan code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(runErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
