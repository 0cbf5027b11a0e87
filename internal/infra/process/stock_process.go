package process

import (
	"context"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// StockBuyBookProcess は在庫を減らして購入記録を残す。
type StockBuyBookProcess struct {
	tx    repo.TransactionManager
	idGen IDGenerator
}

func NewStockBuyBookProcess(tx repo.TransactionManager, idGen IDGenerator) *StockBuyBookProcess {
	return &StockBuyBookProcess{tx: tx, idGen: idGen}
}

// BuyBook は1冊分を自前のトランザクションで買う。
func (p *StockBuyBookProcess) BuyBook(ctx context.Context, book model.Book, quantity int64) error {
	return p.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return p.BuyBookTx(ctx, r, book, quantity)
	})
}

// BuyBookTx は渡されたトランザクションの中で買う。commit/rollbackは呼び出し側。
func (p *StockBuyBookProcess) BuyBookTx(ctx context.Context, r repo.TxRepos, book model.Book, quantity int64) error {
	//在庫減算（足りないなら ErrOutOfStock）
	ok, err := r.Books().DecreaseStockIfEnough(ctx, book.ISBN, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return repo.ErrOutOfStock
	}

	return r.Purchases().Create(ctx, model.Purchase{
		ID:                p.idGen.NewID(),
		ISBN:              book.ISBN,
		UnitPriceSnapshot: book.Price,
		Quantity:          quantity,
	})
}
