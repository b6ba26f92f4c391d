package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"bootstrapstats/domain/core"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{core.NewInvalidInputError("block size", "too large"), CodeInvalidInput, http.StatusUnprocessableEntity},
		{core.NewDegenerateError("constant"), CodeInvalidInput, http.StatusUnprocessableEntity},
		{core.NewMissingInputError("second sample"), CodeMissingInput, http.StatusUnprocessableEntity},
		{fmt.Errorf("run: %w", core.NewLengthMismatchError(1, 2)), CodeLengthMismatch, http.StatusUnprocessableEntity},
		{core.NewUnsupportedAnalysisError("7", "x"), CodeUnsupportedAnalysis, http.StatusNotFound},
		{stderrors.New("boom"), CodeInternalError, http.StatusInternalServerError},
		{Busy("queue full"), CodeBusy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		appErr := FromDomain(tt.err)
		assert.Equal(t, tt.code, appErr.Code, "%v", tt.err)
		assert.Equal(t, tt.status, HTTPStatus(appErr.Code))
		assert.ErrorIs(t, appErr, tt.err)
	}
	assert.Nil(t, FromDomain(nil))
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(ConfigInvalid("PORT is empty"), "failed to load server configuration")
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Contains(t, err.Error(), "PORT is empty")

	assert.Equal(t, CodeInternalError, GetCode(Wrapf(stderrors.New("x"), "step %d", 2)))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
