package repository

import (
	"context"

	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	books     repo.BookRepository
	purchases repo.PurchaseRepository
}

func (r *txReposGorm) Books() repo.BookRepository         { return r.books }
func (r *txReposGorm) Purchases() repo.PurchaseRepository { return r.purchases }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			books:     NewBookGormRepository(tx),
			purchases: NewPurchaseGormRepository(tx),
		}
		return fn(r)
	})
}
