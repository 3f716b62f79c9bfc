package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Category represents the class of analysis failure
type Category int

const (
	// CategoryRepository - the target path is not a valid git repository
	CategoryRepository Category = iota
	// CategoryCommand - a git subprocess could not be spawned or exited non-zero
	CategoryCommand
	// CategoryFileAccess - a tracked file could not be opened for line counting
	CategoryFileAccess
)

// Error is a structured error carrying its category and context.
// Repository and Command errors are fatal for the whole analysis request;
// FileAccess errors are recorded as anomalies and never abort a run.
type Error struct {
	Category Category
	Message  string
	Cause    error
	Context  map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by category, so callers can test
// errors.Is(err, &Error{Category: CategoryRepository}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category
}

// WithContext attaches a key/value pair to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// DetailedString renders the error with its context for diagnostics
func (e *Error) DetailedString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", categoryString(e.Category), e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(" (caused by: %v)", e.Cause))
	}
	for k, v := range e.Context {
		sb.WriteString(fmt.Sprintf("\n  %s: %v", k, v))
	}
	return sb.String()
}

func categoryString(c Category) string {
	switch c {
	case CategoryRepository:
		return "repository"
	case CategoryCommand:
		return "command"
	case CategoryFileAccess:
		return "file-access"
	default:
		return "unknown"
	}
}

// NewRepository reports that repoPath is not a usable git repository
func NewRepository(repoPath string, cause error) *Error {
	e := &Error{
		Category: CategoryRepository,
		Message:  fmt.Sprintf("not a valid git repository: %s", repoPath),
		Cause:    cause,
	}
	return e.WithContext("repo_path", repoPath)
}

// NewCommand reports a failed git invocation, keeping the captured stderr
func NewCommand(args []string, stderr string, cause error) *Error {
	e := &Error{
		Category: CategoryCommand,
		Message:  fmt.Sprintf("git %s failed", strings.Join(args, " ")),
		Cause:    cause,
	}
	e.WithContext("args", args)
	if stderr != "" {
		e.WithContext("stderr", strings.TrimSpace(stderr))
	}
	return e
}

// NewFileAccess reports a file that could not be read during line counting
func NewFileAccess(path string, cause error) *Error {
	e := &Error{
		Category: CategoryFileAccess,
		Message:  fmt.Sprintf("cannot read file: %s", path),
		Cause:    cause,
	}
	return e.WithContext("path", path)
}

// IsRepository reports whether err is (or wraps) a repository error
func IsRepository(err error) bool {
	return isCategory(err, CategoryRepository)
}

// IsCommand reports whether err is (or wraps) a command error
func IsCommand(err error) bool {
	return isCategory(err, CategoryCommand)
}

// IsFileAccess reports whether err is (or wraps) a file access error
func IsFileAccess(err error) bool {
	return isCategory(err, CategoryFileAccess)
}

func isCategory(err error, c Category) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Category == c
}
