package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const shutdownGrace = 10 * time.Second

// New はルート登録済みのechoを返す。
func New(cfg config.Config, logger zerolog.Logger, bookH *handler.BookHandler, cartH *handler.CartHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, cfg, bookH, cartH)
	return e
}

// Start は ctx がキャンセルされるまで待ち受ける。
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return e.Shutdown(sctx)
}
