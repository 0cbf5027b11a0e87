package usecase_test

import (
	"context"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/stretchr/testify/mock"
)

type BookLookupMock struct{ mock.Mock }

func (m *BookLookupMock) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	args := m.Called(ctx, isbn)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

type BuyBookProcessMock struct{ mock.Mock }

func (m *BuyBookProcessMock) BuyBook(ctx context.Context, book model.Book, quantity int64) error {
	args := m.Called(ctx, book, quantity)
	return args.Error(0)
}

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	args := m.Called(ctx, isbn)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Create(ctx context.Context, b model.Book) (model.Book, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(model.Book)
	return created, args.Error(1)
}

func (m *BookRepoMock) SetStock(ctx context.Context, isbn string, newStock int64) error {
	args := m.Called(ctx, isbn, newStock)
	return args.Error(0)
}

func (m *BookRepoMock) DecreaseStockIfEnough(ctx context.Context, isbn string, qty int64) (bool, error) {
	panic("not used in usecase tests")
}

func (m *BookRepoMock) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

// fnをそのまま呼ぶだけのTx
type fakeTx struct {
	books *BookRepoMock
}

func (f *fakeTx) Books() repo.BookRepository         { return f.books }
func (f *fakeTx) Purchases() repo.PurchaseRepository { panic("not used in usecase tests") }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f)
}

type stockListenerSpy struct {
	invalidated []string
}

func (s *stockListenerSpy) Invalidate(isbn string) {
	s.invalidated = append(s.invalidated, isbn)
}

type TxBuyBookProcessMock struct{ mock.Mock }

func (m *TxBuyBookProcessMock) BuyBookTx(ctx context.Context, r repo.TxRepos, book model.Book, quantity int64) error {
	args := m.Called(ctx, r, book, quantity)
	return args.Error(0)
}

type boughtLine struct {
	isbn     string
	quantity int64
}

type purchaseListenerSpy struct {
	bought []boughtLine
}

func (s *purchaseListenerSpy) BookBought(ctx context.Context, book model.Book, quantity int64) {
	s.bought = append(s.bought, boughtLine{isbn: book.ISBN, quantity: quantity})
}

// WithinTxが呼ばれた回数を数える
type countingTx struct {
	fakeTx
	calls int
}

func (c *countingTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	c.calls++
	return fn(&c.fakeTx)
}
