package usecase_test

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	uc    *usecase.CheckoutUsecase
	books *BookLookupMock
	buyer *TxBuyBookProcessMock
	tx    *countingTx
	spy   *purchaseListenerSpy
}

func newCheckout() checkoutFixture {
	f := checkoutFixture{
		books: new(BookLookupMock),
		buyer: new(TxBuyBookProcessMock),
		tx:    &countingTx{fakeTx: fakeTx{books: new(BookRepoMock)}},
		spy:   &purchaseListenerSpy{},
	}
	f.uc = usecase.NewCheckoutUsecase(f.books, f.tx, f.buyer, f.spy)
	return f
}

func TestCheckout_NilOrder(t *testing.T) {
	f := newCheckout()

	summary, err := f.uc.Checkout(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, summary)

	assert.Equal(t, 0, f.tx.calls)
	f.buyer.AssertNotCalled(t, "BuyBookTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_BuysChargeableQuantityInOneTx(t *testing.T) {
	f := newCheckout()
	book1 := model.Book{ISBN: "123", Price: 10, Quantity: 3}
	book2 := model.Book{ISBN: "456", Price: 12, Quantity: 10}
	book3 := model.Book{ISBN: "789", Price: 7, Quantity: 4}
	f.books.On("FindByISBN", mock.Anything, "123").Return(book1, nil)
	f.books.On("FindByISBN", mock.Anything, "456").Return(book2, nil)
	f.books.On("FindByISBN", mock.Anything, "789").Return(book3, nil)

	//在庫分だけ買う
	f.buyer.On("BuyBookTx", mock.Anything, mock.Anything, book1, int64(3)).Return(nil).Once()
	f.buyer.On("BuyBookTx", mock.Anything, mock.Anything, book2, int64(8)).Return(nil).Once()

	summary, err := f.uc.Checkout(context.Background(), map[string]int64{"123": 5, "456": 8, "789": 0})
	require.NoError(t, err)
	assert.Equal(t, int64(126), summary.TotalPrice)
	assert.Equal(t, int64(2), summary.ShortfallOf(book1))

	assert.Equal(t, 1, f.tx.calls)
	f.buyer.AssertExpectations(t)
	f.buyer.AssertNotCalled(t, "BuyBookTx", mock.Anything, mock.Anything, book3, mock.Anything)
	assert.Equal(t, []boughtLine{{"123", 3}, {"456", 8}}, f.spy.bought)
}

func TestCheckout_OutOfStockBook_NotBought(t *testing.T) {
	f := newCheckout()
	book := model.Book{ISBN: "123", Price: 10, Quantity: 0}
	f.books.On("FindByISBN", mock.Anything, "123").Return(book, nil)

	summary, err := f.uc.Checkout(context.Background(), map[string]int64{"123": 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalPrice)
	assert.Equal(t, int64(2), summary.ShortfallOf(book))

	assert.Equal(t, 0, f.tx.calls)
	assert.Empty(t, f.spy.bought)
}

func TestCheckout_PricingErrorBuysNothing(t *testing.T) {
	f := newCheckout()
	f.books.On("FindByISBN", mock.Anything, "123").Return(model.Book{ISBN: "123", Price: 10, Quantity: 5}, nil).Maybe()
	f.books.On("FindByISBN", mock.Anything, "999").Return(model.Book{}, repo.ErrNotFound)

	_, err := f.uc.Checkout(context.Background(), map[string]int64{"123": 1, "999": 1})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.Equal(t, 0, f.tx.calls)
	assert.Empty(t, f.spy.bought)
}

func TestCheckout_LaterLineFails_NoSummaryNoEvents(t *testing.T) {
	f := newCheckout()
	book1 := model.Book{ISBN: "123", Price: 10, Quantity: 5}
	book2 := model.Book{ISBN: "456", Price: 12, Quantity: 5}
	f.books.On("FindByISBN", mock.Anything, "123").Return(book1, nil)
	f.books.On("FindByISBN", mock.Anything, "456").Return(book2, nil)

	f.buyer.On("BuyBookTx", mock.Anything, mock.Anything, book1, int64(2)).Return(nil).Once()
	f.buyer.On("BuyBookTx", mock.Anything, mock.Anything, book2, int64(1)).Return(repo.ErrOutOfStock).Once()

	summary, err := f.uc.Checkout(context.Background(), map[string]int64{"123": 2, "456": 1})
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, repo.ErrOutOfStock)

	assert.Equal(t, 1, f.tx.calls)
	assert.Empty(t, f.spy.bought)
	f.buyer.AssertExpectations(t)
}

func TestCheckout_TxErrorReturnedUnchanged(t *testing.T) {
	f := newCheckout()
	book := model.Book{ISBN: "123", Price: 10, Quantity: 5}
	f.books.On("FindByISBN", mock.Anything, "123").Return(book, nil)
	commitErr := errors.New("commit failed")
	f.buyer.On("BuyBookTx", mock.Anything, mock.Anything, book, int64(1)).Return(commitErr)

	_, err := f.uc.Checkout(context.Background(), map[string]int64{"123": 1})
	assert.Same(t, commitErr, err)
	assert.Empty(t, f.spy.bought)
}
