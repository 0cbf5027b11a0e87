package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/middleware"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 価格計算。usecase.CartPricer が満たす。
type CartQuoter interface {
	GetPriceForCart(ctx context.Context, order map[string]int64) (*model.PurchaseSummary, error)
}

// 購入。usecase.CheckoutUsecase が満たす。
type CartCheckouter interface {
	Checkout(ctx context.Context, order map[string]int64) (*model.PurchaseSummary, error)
}

// /cartのHTTP
// price は見積もり用（キャッシュ可）、checkout は在庫を確定させる。
type CartHandler struct {
	quote    CartQuoter
	checkout CartCheckouter
}

// DI
func NewCartHandler(quote CartQuoter, checkout CartCheckouter) *CartHandler {
	return &CartHandler{quote: quote, checkout: checkout}
}

// order が null/省略なら 204
type CartRequest struct {
	Order map[string]int64 `json:"order"`
}

type UnavailableItem struct {
	ISBN      string `json:"isbn"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Shortfall int64  `json:"shortfall"`
}

type PurchaseSummaryResponse struct {
	TotalPrice  int64             `json:"total_price"`
	Unavailable []UnavailableItem `json:"unavailable"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.POST("/price", h.price)
	g.POST("/checkout", h.doCheckout, middleware.AuthJWT(cfg))
}

func (h *CartHandler) price(c echo.Context) error {
	return h.handle(c, h.quote.GetPriceForCart)
}

func (h *CartHandler) doCheckout(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return h.handle(c, h.checkout.Checkout)
}

func (h *CartHandler) handle(c echo.Context, run func(context.Context, map[string]int64) (*model.PurchaseSummary, error)) error {
	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	summary, err := run(c.Request().Context(), req.Order)
	if err != nil {
		return writeError(c, cartError(err))
	}
	if summary == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// usecaseのエラーをHTTPに寄せる
func cartError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, repo.ErrNotFound):
		return usecase.NewHTTPError(http.StatusBadRequest, "unknown isbn")
	case errors.Is(err, usecase.ErrPriceOverflow):
		return usecase.NewHTTPError(http.StatusUnprocessableEntity, "total price too large")
	case errors.Is(err, repo.ErrOutOfStock):
		return usecase.NewHTTPError(http.StatusConflict, "out of stock")
	default:
		return err
	}
}

func toSummaryResponse(s *model.PurchaseSummary) PurchaseSummaryResponse {
	items := make([]UnavailableItem, 0, len(s.Unavailable))
	for _, sf := range s.Unavailable {
		items = append(items, UnavailableItem{
			ISBN:      sf.Book.ISBN,
			Price:     sf.Book.Price,
			Quantity:  sf.Book.Quantity,
			Shortfall: sf.Quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ISBN != items[j].ISBN {
			return items[i].ISBN < items[j].ISBN
		}
		return items[i].Price < items[j].Price
	})

	return PurchaseSummaryResponse{
		TotalPrice:  s.TotalPrice,
		Unavailable: items,
	}
}
