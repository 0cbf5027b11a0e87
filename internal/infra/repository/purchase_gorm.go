package repository

import (
	"context"

	"bookstore/internal/domain/model"

	"gorm.io/gorm"
)

type PurchaseGormRepository struct {
	db *gorm.DB
}

func NewPurchaseGormRepository(db *gorm.DB) *PurchaseGormRepository {
	return &PurchaseGormRepository{db: db}
}

func (r *PurchaseGormRepository) Create(ctx context.Context, p model.Purchase) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

// 古い順
func (r *PurchaseGormRepository) ListByISBN(ctx context.Context, isbn string) ([]model.Purchase, error) {
	var out []model.Purchase
	err := r.db.WithContext(ctx).
		Where("isbn = ?", isbn).
		Order("created_at asc").
		Find(&out).Error
	if err != nil {
		return []model.Purchase{}, err
	}
	return out, nil
}
