package receipts

import (
	"time"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
)

// ReceiptView is the JSON representation of a receipt shared by the API and
// the adapters that ship the whole aggregate.
type ReceiptView struct {
	ID       uuid.UUID  `json:"id"`
	Date     time.Time  `json:"date"`
	Total    string     `json:"total"`
	Currency string     `json:"currency,omitempty"`
	Sells    []SellView `json:"sells"`
}

type SellView struct {
	ID            uuid.UUID   `json:"id"`
	Product       ProductView `json:"product"`
	Quantity      string      `json:"quantity"`
	Price         string      `json:"price"`
	PriceCurrency string      `json:"price_currency"`
	Total         string      `json:"total"`
}

type ProductView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DefaultPrice string    `json:"default_price"`
	Currency     string    `json:"default_price_currency"`
	Icon         *string   `json:"icon"`
}

func ViewProduct(p domain.Product) ProductView {
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		DefaultPrice: domain.FormatFixed(p.DefaultPrice.Amount),
		Currency:     string(p.DefaultPrice.Currency),
		Icon:         p.Icon,
	}
}

func View(r *domain.Receipt) ReceiptView {
	v := ReceiptView{
		ID:    r.ID,
		Date:  r.Date,
		Sells: make([]SellView, 0, len(r.Sells)),
	}
	if total, err := r.Total(); err == nil {
		v.Total = domain.FormatFixed(total.Amount)
		v.Currency = string(total.Currency)
	}
	for _, s := range r.Sells {
		v.Sells = append(v.Sells, SellView{
			ID:            s.ID,
			Product:       ViewProduct(s.Product),
			Quantity:      domain.FormatFixed(s.Quantity),
			Price:         domain.FormatFixed(s.Price.Amount),
			PriceCurrency: string(s.Price.Currency),
			Total:         domain.FormatFixed(s.Total().Amount),
		})
	}
	return v
}
