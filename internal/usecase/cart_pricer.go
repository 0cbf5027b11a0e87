package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"bookstore/internal/domain/model"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrPriceOverflow   = errors.New("total price overflows int64")
)

// ISBNで書籍を引く。見つからなければ repository.ErrNotFound。
type BookLookup interface {
	FindByISBN(ctx context.Context, isbn string) (model.Book, error)
}

// 購入処理（在庫引当など）
type BuyBookProcess interface {
	BuyBook(ctx context.Context, book model.Book, quantity int64) error
}

// CartPricer はカートの価格計算。購入処理は呼ばない。
type CartPricer struct {
	books   BookLookup
	process BuyBookProcess
}

// DI
func NewCartPricer(books BookLookup, process BuyBookProcess) *CartPricer {
	return &CartPricer{
		books:   books,
		process: process,
	}
}

// GetPriceForCart は注文（ISBN→数量）の合計金額と在庫不足を返す。
// order が nil なら nil を返す（エラーではない）。
func (p *CartPricer) GetPriceForCart(ctx context.Context, order map[string]int64) (*model.PurchaseSummary, error) {
	if order == nil {
		return nil, nil
	}

	summary, _, err := priceOrder(ctx, p.books, order)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// 請求対象の明細
type chargeLine struct {
	book     model.Book
	quantity int64
}

func priceOrder(ctx context.Context, books BookLookup, order map[string]int64) (*model.PurchaseSummary, []chargeLine, error) {
	//数量チェックはlookupより先
	for isbn, qty := range order {
		if qty < 0 {
			return nil, nil, fmt.Errorf("isbn %s: %w", isbn, ErrInvalidQuantity)
		}
	}

	summary := model.NewPurchaseSummary()
	lines := make([]chargeLine, 0, len(order))

	for isbn, requested := range order {
		//lookupのエラーはそのまま返す
		book, err := books.FindByISBN(ctx, isbn)
		if err != nil {
			return nil, nil, err
		}

		chargeable := requested
		if book.Quantity < requested {
			summary.AddUnavailable(book, requested-book.Quantity)
			chargeable = book.Quantity
		}

		subtotal, err := lineTotal(book.Price, chargeable)
		if err == nil && subtotal > 0 && summary.TotalPrice > math.MaxInt64-subtotal {
			err = ErrPriceOverflow
		}
		if err != nil {
			return nil, nil, fmt.Errorf("isbn %s: %w", isbn, err)
		}

		summary.AddToTotalPrice(subtotal)
		lines = append(lines, chargeLine{book: book, quantity: chargeable})
	}

	return summary, lines, nil
}

func lineTotal(price, quantity int64) (int64, error) {
	if quantity > 0 && price > math.MaxInt64/quantity {
		return 0, ErrPriceOverflow
	}
	return price * quantity, nil
}
