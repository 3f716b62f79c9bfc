package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPredicates(t *testing.T) {
	repoErr := NewRepository("/tmp/nope", os.ErrNotExist)
	cmdErr := NewCommand([]string{"log"}, "fatal: bad revision", stderrors.New("exit status 128"))
	fileErr := NewFileAccess("src/main.go", os.ErrPermission)

	assert.True(t, IsRepository(repoErr))
	assert.False(t, IsRepository(cmdErr))
	assert.True(t, IsCommand(cmdErr))
	assert.True(t, IsFileAccess(fileErr))
	assert.False(t, IsFileAccess(nil))
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	inner := NewCommand([]string{"ls-files"}, "", stderrors.New("exit status 1"))
	wrapped := fmt.Errorf("enumerating files: %w", inner)

	require.True(t, IsCommand(wrapped))
	assert.False(t, IsRepository(wrapped))

	var e *Error
	require.True(t, stderrors.As(wrapped, &e))
	assert.Equal(t, CategoryCommand, e.Category)
}

func TestUnwrapReachesCause(t *testing.T) {
	err := NewRepository("bad", os.ErrNotExist)
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestContextCapture(t *testing.T) {
	err := NewCommand([]string{"log", "--name-status"}, "fatal: not a git repository\n", nil)
	require.NotNil(t, err.Context)
	assert.Equal(t, "fatal: not a git repository", err.Context["stderr"])

	detailed := err.DetailedString()
	assert.Contains(t, detailed, "[command]")
	assert.Contains(t, detailed, "not a git repository")
}
