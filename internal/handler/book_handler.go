package handler

import (
	"net/http"

	"bookstore/internal/config"
	"bookstore/internal/middleware"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /books と /admin/books
type BookHandler struct {
	uc *usecase.BookUsecase
}

// DI
func NewBookHandler(uc *usecase.BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

type CreateBookRequest struct {
	ISBN     string `json:"isbn"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type UpdateStockRequest struct {
	Quantity *int64 `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *BookHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/books/:isbn", h.detail)

	g := e.Group("/admin/books")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())

	g.POST("", h.create)
	g.PUT("/:isbn/stock", h.updateStock)
}

func (h *BookHandler) detail(c echo.Context) error {
	b, err := h.uc.GetBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.AdminCreateBook(c.Request().Context(), adminID, usecase.AdminCreateBookInput{
		ISBN:     req.ISBN,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BookHandler) updateStock(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity required"})
	}

	if err := h.uc.AdminUpdateStock(c.Request().Context(), adminID, c.Param("isbn"), *req.Quantity, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
