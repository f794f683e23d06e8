package controller

import "github.com/labstack/echo/v4"

type ExtractController interface {
	Extract(c echo.Context) error
}
