package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradercheck/tradercheck/internal/domain/model"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrValidation, http.StatusBadRequest},
		{model.ErrInvalidScore, http.StatusBadRequest},
		{model.ErrInvalidStatus, http.StatusBadRequest},
		{model.ErrFieldNotAllowed, http.StatusBadRequest},
		{model.ErrBrokerInactive, http.StatusForbidden},
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrReferenced, http.StatusConflict},
		{model.ErrVersionConflict, http.StatusConflict},
		{model.ErrDuplicate, http.StatusConflict},
		{model.ErrRateLimited, http.StatusTooManyRequests},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}
