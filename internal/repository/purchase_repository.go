package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type PurchaseRepository interface {
	Create(ctx context.Context, p model.Purchase) error
	ListByISBN(ctx context.Context, isbn string) ([]model.Purchase, error)
}
