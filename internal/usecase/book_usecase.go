package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

// 在庫が変わったISBNを受け取る（キャッシュ破棄など）
type StockListener interface {
	Invalidate(isbn string)
}

type BookUsecase struct {
	bookRepo  repo.BookRepository
	tx        repo.TransactionManager
	listeners []StockListener
}

// DI
func NewBookUsecase(bookRepo repo.BookRepository, tx repo.TransactionManager, listeners ...StockListener) *BookUsecase {
	return &BookUsecase{
		bookRepo:  bookRepo,
		tx:        tx,
		listeners: listeners,
	}
}

func (u *BookUsecase) GetBook(ctx context.Context, isbn string) (model.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid isbn")
	}

	b, err := u.bookRepo.FindByISBN(ctx, isbn)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

type AdminCreateBookInput struct {
	ISBN     string
	Price    int64
	Quantity int64
}

func (u *BookUsecase) AdminCreateBook(ctx context.Context, adminUserID int64, in AdminCreateBookInput) (model.Book, error) {
	if adminUserID <= 0 {
		return model.Book{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	b, err := model.NewBook(in.ISBN, in.Price, in.Quantity)
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid book")
	}

	created, err := u.bookRepo.Create(ctx, b)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Book{}, NewHTTPError(http.StatusConflict, "isbn already exists")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 在庫の現在値を更新し、調整履歴も残す
func (u *BookUsecase) AdminUpdateStock(ctx context.Context, adminUserID int64, isbn string, newStock int64, reason string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid isbn")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前の在庫
		b, err := r.Books().FindByISBN(ctx, isbn)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Books().SetStock(ctx, isbn, newStock); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//履歴を作成（差分）
		if err := r.Books().CreateAdjustment(ctx, model.StockAdjustment{
			ISBN:        isbn,
			AdminUserID: adminUserID,
			Delta:       newStock - b.Quantity,
			Reason:      strings.TrimSpace(reason),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, l := range u.listeners {
		l.Invalidate(isbn)
	}
	return nil
}
