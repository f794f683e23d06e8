package controller

import "github.com/labstack/echo/v4"

type SimulateController interface {
	Simulate(c echo.Context) error
	Compare(c echo.Context) error
	Guidance(c echo.Context) error
	Reference(c echo.Context) error
}
