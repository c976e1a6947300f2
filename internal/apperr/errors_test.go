package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nartbayev/wishwell/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.ErrValidation, http.StatusBadRequest},
		{apperr.ErrDuplicateCopy, http.StatusBadRequest},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, apperr.Status(tc.err), tc.err.Error())
		wrapped := fmt.Errorf("context: %w", tc.err)
		assert.Equal(t, tc.status, apperr.Status(wrapped))
	}
}
