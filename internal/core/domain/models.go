package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item of the catalog that can be sold through the register
type Product struct {
	ID           uuid.UUID
	Name         string
	DefaultPrice Money
	Icon         *string
	CreatedAt    time.Time
}

// MaxProductName is the length of the name column.
const MaxProductName = 100

// NewProduct builds a catalog entry; the name is trimmed and required.
func NewProduct(name string, defaultPrice Money, icon *string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProductNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxProductName {
		return nil, ErrProductNameLong
	}
	if defaultPrice.Amount.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Product{
		ID:           uuid.New(),
		Name:         name,
		DefaultPrice: defaultPrice,
		Icon:         icon,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (p Product) String() string {
	return p.Name
}

// Receipt represents a completed sale and owns its Sells
type Receipt struct {
	ID    uuid.UUID
	Date  time.Time
	Sells []Sell
}

func NewReceipt(date time.Time) *Receipt {
	return &Receipt{
		ID:   uuid.New(),
		Date: date.UTC(),
	}
}

// Total is the sum of price * quantity over all Sells, rounded to two places.
// An empty receipt totals zero with no currency.
func (r *Receipt) Total() (Money, error) {
	if len(r.Sells) == 0 {
		return Money{Amount: decimal.Zero}, nil
	}
	total := Money{Amount: decimal.Zero, Currency: r.Sells[0].Price.Currency}
	for _, s := range r.Sells {
		var err error
		total, err = total.Add(s.Price.Mul(s.Quantity))
		if err != nil {
			return Money{}, err
		}
	}
	return total.Quantized(), nil
}

func (r *Receipt) String() string {
	total, err := r.Total()
	if err != nil {
		return fmt.Sprintf("Total: n/a -- %s", r.Date.Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("Total: %s -- %s", FormatFixed(total.Amount), r.Date.Format("2006-01-02 15:04"))
}

// Sell is a single line item of a Receipt
type Sell struct {
	ID        uuid.UUID
	ReceiptID uuid.UUID
	Product   Product
	Quantity  decimal.Decimal
	Price     Money
}

// NewSell builds the line item that is going to be saved. A zero price is
// replaced with the product default price.
func NewSell(receiptID uuid.UUID, product Product, quantity decimal.Decimal, price Money) (*Sell, error) {
	if product.ID == uuid.Nil {
		return nil, ErrProductMissing
	}
	if quantity.IsNegative() {
		return nil, ErrNegativeQuantity
	}
	// TODO: a free promotional item cannot be sold until zero stops meaning "unset"
	if price.IsZero() {
		price = product.DefaultPrice
	}
	return &Sell{
		ID:        uuid.New(),
		ReceiptID: receiptID,
		Product:   product,
		Quantity:  quantity,
		Price:     price,
	}, nil
}

// Total is price * quantity for this row, rounded to two places.
func (s Sell) Total() Money {
	return s.Price.Mul(s.Quantity).Quantized()
}
