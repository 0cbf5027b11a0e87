package model

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"strings"
	"time"
)

var ErrInvalidBook = errors.New("invalid book")

// 書籍（ISBNごとの単価と在庫数）
// 等価性は ISBN と単価だけで決まる。在庫数は含めない。
type Book struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ISBN      string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"isbn"`
	Price     int64     `gorm:"not null" json:"price"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

// mapのキーに使う値。Book同士の等価性と一致する。
type BookKey struct {
	ISBN  string
	Price int64
}

// NewBook は入力を検証してBookを作る。
func NewBook(isbn string, price int64, quantity int64) (Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" || price < 0 || quantity < 0 {
		return Book{}, ErrInvalidBook
	}
	return Book{ISBN: isbn, Price: price, Quantity: quantity}, nil
}

func (b Book) Key() BookKey {
	return BookKey{ISBN: b.ISBN, Price: b.Price}
}

// Equals は Book / *Book 以外、nil に対しては false。
func (b Book) Equals(other any) bool {
	switch o := other.(type) {
	case Book:
		return b.Key() == o.Key()
	case *Book:
		if o == nil {
			return false
		}
		return b.Key() == o.Key()
	default:
		return false
	}
}

// Hash は Equals と整合するハッシュ（FNV-1a）。
// map のキーには Key() を使うので、ここはハッシュ値が要る呼び出し側向け。
func (b Book) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(b.ISBN))

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(b.Price))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
