// Package apierr maps domain errors onto HTTP status codes and JSON bodies.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropwater/pkg/climate"
	"cropwater/pkg/waterbalance"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

func Status(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, waterbalance.ErrMalformedDate):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, climate.ErrNumericDomain), errors.Is(err, waterbalance.ErrUnknownReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes err as {"error": "..."} with the mapped status.
func JSON(c echo.Context, err error) error {
	return c.JSON(Status(err), map[string]string{"error": err.Error()})
}

// ParamID reads a positive numeric path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, c.Param(name))
	}
	return uint(v), nil
}
