package repository

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate")
	ErrOutOfStock = errors.New("out of stock")
)
