package cache

import (
	"context"
	"time"

	"bookstore/internal/domain/model"
	"bookstore/internal/usecase"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// BookLookupCache は FindByISBN の結果をTTL付きLRUで持つ。
// エラー（見つからない場合も）はキャッシュしない。
type BookLookupCache struct {
	next  usecase.BookLookup
	cache *expirable.LRU[string, model.Book]
}

func NewBookLookupCache(next usecase.BookLookup, size int, ttl time.Duration) *BookLookupCache {
	return &BookLookupCache{
		next:  next,
		cache: expirable.NewLRU[string, model.Book](size, nil, ttl),
	}
}

func (c *BookLookupCache) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	if b, ok := c.cache.Get(isbn); ok {
		return b, nil
	}

	b, err := c.next.FindByISBN(ctx, isbn)
	if err != nil {
		return model.Book{}, err
	}
	c.cache.Add(isbn, b)
	return b, nil
}

// 在庫更新後などに呼ぶ
func (c *BookLookupCache) Invalidate(isbn string) {
	c.cache.Remove(isbn)
}
