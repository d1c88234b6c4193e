//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"rentalhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, errs.Wrap(nil, "ignored"))

	base := errs.New("boom")
	wrapped := errs.Wrap(base, "while booking")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "while booking")
}

func TestMark(t *testing.T) {
	sentinel := errors.New("database operation failed")

	assert.ErrorIs(t, errs.Mark(nil, sentinel), sentinel)

	cause := errs.New("connection reset")
	marked := errs.Mark(cause, sentinel)
	assert.ErrorIs(t, marked, sentinel)
	assert.Contains(t, marked.Error(), "connection reset")
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 10))

	err := errs.Wrap(errs.New("boom"), "outer")
	lines := errs.ExtractStackLines(err, 5)
	require.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "outer")
}
