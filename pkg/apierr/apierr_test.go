package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"cropwater/pkg/climate"
	"cropwater/pkg/waterbalance"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: field id", ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("plant: %w", waterbalance.ErrMalformedDate), http.StatusBadRequest},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{&waterbalance.DayError{Day: 4, Err: &climate.DomainError{Step: "input"}}, http.StatusUnprocessableEntity},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
