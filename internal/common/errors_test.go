package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("scale run: %w", TransformFailed("price", base))

	assert.True(t, IsTransformFailed(err))
	assert.False(t, IsInputFormat(err))
	assert.ErrorIs(t, err, base)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "price", e.Column)
	assert.True(t, e.Recoverable())
	assert.Contains(t, err.Error(), `column "price"`)
}

func TestInputFormatIsFatal(t *testing.T) {
	err := InputFormat("only CSV files are supported", nil)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.False(t, e.Recoverable())
	assert.Equal(t, "input format: only CSV files are supported", err.Error())
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
}

func TestSetupLoggerRejectsUnknownValues(t *testing.T) {
	assert.Error(t, SetupLogger(nil, "loud", "console"))
	assert.Error(t, SetupLogger(nil, "info", "xml"))
}
