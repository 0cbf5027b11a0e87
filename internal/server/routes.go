package server

import (
	"bookstore/internal/config"
	"bookstore/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, bookH *handler.BookHandler, cartH *handler.CartHandler) {
	bookH.RegisterRoutes(e, cfg)
	cartH.RegisterRoutes(e, cfg)
}
