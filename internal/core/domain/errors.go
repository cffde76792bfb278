package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrIntegrity        = errors.New("integrity error")
	ErrDuplicateProduct = errors.New("a product with this name already exists")
	ErrProductNameEmpty = errors.New("product name is required")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeQuantity = errors.New("quantity must be greater than or equal to 0")
	ErrProductMissing   = errors.New("sell must reference a product")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrProductNameLong  = errors.New("product name must be at most 100 characters")
	ErrNegativePrice    = errors.New("price must be greater than or equal to 0")
	ErrTxClosed         = errors.New("transaction already closed")
)
