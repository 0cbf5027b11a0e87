package repository

import (
	"context"
	"errors"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type BookGormRepository struct {
	db *gorm.DB
}

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

// ISBNで書籍を取得
func (r *BookGormRepository) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// 書籍の作成
func (r *BookGormRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	err := r.db.WithContext(ctx).Create(&b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Book{}, repo.ErrDuplicate
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// 在庫の現在値を設定
func (r *BookGormRepository) SetStock(ctx context.Context, isbn string, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("isbn = ?", isbn).
		Update("quantity", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす
func (r *BookGormRepository) DecreaseStockIfEnough(ctx context.Context, isbn string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("isbn = ? AND quantity >= ?", isbn, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 調整履歴作成
func (r *BookGormRepository) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}
