package dartdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/dartdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := dartdoc.Errorf(dartdoc.ENOTFOUND, "report %q not found", "20251121000355")

	assert.Equal(t, dartdoc.ENOTFOUND, dartdoc.ErrorCode(err))
	assert.Equal(t, "report \"20251121000355\" not found", dartdoc.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load report: %w", dartdoc.Errorf(dartdoc.EUNAVAILABLE, "busy"))

	assert.Equal(t, dartdoc.EUNAVAILABLE, dartdoc.ErrorCode(err))
	assert.Equal(t, "busy", dartdoc.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, dartdoc.EINTERNAL, dartdoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", dartdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, dartdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, dartdoc.ErrorMessage(nil))
}
