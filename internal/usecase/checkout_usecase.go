package usecase

import (
	"context"
	"sort"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

// 呼び出し側のトランザクション内で1明細を購入する
type TxBuyBookProcess interface {
	BuyBookTx(ctx context.Context, r repo.TxRepos, book model.Book, quantity int64) error
}

// コミット済みの購入を受け取る（イベント送信など）
type PurchaseListener interface {
	BookBought(ctx context.Context, book model.Book, quantity int64)
}

// CheckoutUsecase は価格計算した注文をまとめて購入する。
type CheckoutUsecase struct {
	books     BookLookup
	tx        repo.TransactionManager
	buyer     TxBuyBookProcess
	listeners []PurchaseListener
}

// DI
func NewCheckoutUsecase(books BookLookup, tx repo.TransactionManager, buyer TxBuyBookProcess, listeners ...PurchaseListener) *CheckoutUsecase {
	return &CheckoutUsecase{
		books:     books,
		tx:        tx,
		buyer:     buyer,
		listeners: listeners,
	}
}

// Checkout は価格計算のあと、請求数量が1以上の明細を1トランザクションで購入する。
// どれか1明細でも失敗したら何も買わない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, order map[string]int64) (*model.PurchaseSummary, error) {
	if order == nil {
		return nil, nil
	}

	summary, lines, err := priceOrder(ctx, u.books, order)
	if err != nil {
		return nil, err
	}

	buy := make([]chargeLine, 0, len(lines))
	for _, l := range lines {
		if l.quantity > 0 {
			buy = append(buy, l)
		}
	}
	if len(buy) == 0 {
		return summary, nil
	}
	//ロック順を揃える
	sort.Slice(buy, func(i, j int) bool { return buy[i].book.ISBN < buy[j].book.ISBN })

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, l := range buy {
			if err := u.buyer.BuyBookTx(ctx, r, l.book, l.quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	//commit後に通知
	for _, l := range buy {
		for _, ln := range u.listeners {
			ln.BookBought(ctx, l.book, l.quantity)
		}
	}
	return summary, nil
}
