package model

// 在庫不足の明細（不足数と引いた時点のBook）
type Shortfall struct {
	Book     Book
	Quantity int64
}

// カート価格計算の結果
type PurchaseSummary struct {
	TotalPrice  int64
	Unavailable map[BookKey]Shortfall
}

func NewPurchaseSummary() *PurchaseSummary {
	return &PurchaseSummary{Unavailable: map[BookKey]Shortfall{}}
}

func (s *PurchaseSummary) AddToTotalPrice(amount int64) {
	s.TotalPrice += amount
}

func (s *PurchaseSummary) AddUnavailable(b Book, quantity int64) {
	s.Unavailable[b.Key()] = Shortfall{Book: b, Quantity: quantity}
}

// ShortfallOf は等価なBookの不足数を返す（無ければ0）。
func (s *PurchaseSummary) ShortfallOf(b Book) int64 {
	return s.Unavailable[b.Key()].Quantity
}
