package receipts

import (
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/shopspring/decimal"
)

// Convert turns validated items into push rows. The quantity is only set
// when more than one unit was sold.
func Convert(items []Item) []push.Row {
	rows := make([]push.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item.Product.Name, item.Price.Amount, item.Quantity))
	}
	return rows
}

// ConvertReceipt builds the rows of a stored receipt, using the price that
// was persisted for every Sell.
func ConvertReceipt(r *domain.Receipt) []push.Row {
	rows := make([]push.Row, 0, len(r.Sells))
	for _, s := range r.Sells {
		rows = append(rows, row(s.Product.Name, s.Price.Amount, s.Quantity))
	}
	return rows
}

func row(description string, price, quantity decimal.Decimal) push.Row {
	r := push.Row{
		Description: description,
		Price:       domain.FormatFixed(price),
	}
	if quantity.GreaterThan(decimal.NewFromInt(1)) {
		r.Quantity = domain.FormatFixed(quantity)
	}
	return r
}
