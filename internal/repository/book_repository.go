package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

// 書籍の永続化（保存・取得）だけを約束。
type BookRepository interface {
	// 見つからなければ ErrNotFound
	FindByISBN(ctx context.Context, isbn string) (model.Book, error)

	// ISBN重複は ErrDuplicate
	Create(ctx context.Context, b model.Book) (model.Book, error)

	// 在庫の現在値を設定
	SetStock(ctx context.Context, isbn string, newStock int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, isbn string, qty int64) (bool, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error
}
