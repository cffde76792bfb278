package receipts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	maxDigits        = 10
	maxDecimalPlaces = domain.Places
	maxWholeDigits   = maxDigits - maxDecimalPlaces
)

// Reasons attached to a FieldError.
const (
	ReasonEmptyList      = "empty_list"
	ReasonRequired       = "required"
	ReasonUnknownProduct = "unknown_product"
	ReasonInvalidChoice  = "invalid_choice"
	ReasonInvalid        = "invalid"
	ReasonMaxDigits      = "max_digits"
	ReasonMaxPlaces      = "max_decimal_places"
	ReasonMaxWholeDigits = "max_whole_digits"
	ReasonMinValue       = "min_value"
)

// SubmitRequest is the body of a receipt submission. A nil Products slice
// means the key was missing.
type SubmitRequest struct {
	Products []RawItem `json:"products"`
}

// RawItem is one sold line as sent by the register. Price and quantity are
// accepted both as JSON strings and numbers. ID is kept raw so that a value
// of the wrong type is reported on the item instead of failing the body.
type RawItem struct {
	ID            json.RawMessage `json:"id"`
	Price         json.RawMessage `json:"price"`
	PriceCurrency string          `json:"price_currency,omitempty"`
	Quantity      json.RawMessage `json:"quantity,omitempty"`
}

// Item is a validated line with every field resolved.
type Item struct {
	Product  domain.Product
	Price    domain.Money
	Quantity decimal.Decimal
}

type FieldError struct {
	Field   string
	Reason  string
	Message string
	// Index of the offending item, -1 for list level errors.
	Index int
}

// ValidationError collects every problem found in a submission.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields groups messages by field name, the shape returned to API clients.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func (e *ValidationError) add(index int, field, reason, msg string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Reason: reason, Message: msg, Index: index})
}

// HasReason reports whether any collected error carries reason.
func (e *ValidationError) HasReason(reason string) bool {
	for _, fe := range e.Errors {
		if fe.Reason == reason {
			return true
		}
	}
	return false
}

type Validator struct {
	catalog    Catalog
	currencies []domain.Currency
}

// NewValidator returns a validator accepting the given currencies. The first
// one is the default applied when an item omits price_currency.
func NewValidator(catalog Catalog, currencies ...domain.Currency) *Validator {
	if len(currencies) == 0 {
		currencies = []domain.Currency{domain.EUR}
	}
	return &Validator{catalog: catalog, currencies: currencies}
}

func (v *Validator) DefaultCurrency() domain.Currency {
	return v.currencies[0]
}

// Validate checks the submission and resolves product references. It never
// writes anything.
func (v *Validator) Validate(ctx context.Context, req SubmitRequest) ([]Item, error) {
	verr := &ValidationError{}
	if req.Products == nil {
		verr.add(-1, "products", ReasonRequired, "This field is required.")
		return nil, verr
	}
	if len(req.Products) == 0 {
		verr.add(-1, "products", ReasonEmptyList, "This list may not be empty.")
		return nil, verr
	}

	ids := make([]uuid.UUID, len(req.Products))
	parsed := make([]bool, len(req.Products))
	lookup := make([]uuid.UUID, 0, len(req.Products))
	for i, raw := range req.Products {
		id, ok := parseProductID(verr, i, raw.ID)
		if !ok {
			continue
		}
		ids[i], parsed[i] = id, true
		lookup = append(lookup, id)
	}

	products := map[uuid.UUID]domain.Product{}
	if len(lookup) > 0 {
		var err error
		products, err = v.catalog.ProductsByID(ctx, lookup)
		if err != nil {
			return nil, fmt.Errorf("resolve products: %w", err)
		}
	}

	items := make([]Item, 0, len(req.Products))
	for i, raw := range req.Products {
		product, found := products[ids[i]]
		if parsed[i] && !found {
			verr.add(i, "products", ReasonUnknownProduct, unknownProduct(ids[i].String()))
		}

		price, ok := v.decimalField(verr, i, "price", raw.Price, nil)
		currency, currencyOK := v.currency(verr, i, raw.PriceCurrency)
		one := decimal.NewFromInt(1)
		quantity, quantityOK := v.decimalField(verr, i, "quantity", raw.Quantity, &one)

		if found && ok && currencyOK && quantityOK {
			items = append(items, Item{
				Product:  product,
				Price:    domain.NewMoney(price, currency),
				Quantity: quantity,
			})
		}
	}

	if len(verr.Errors) > 0 {
		return nil, verr
	}
	return items, nil
}

// parseProductID reads the primary key of an item. Anything that is not a
// UUID string cannot reference a product.
func parseProductID(verr *ValidationError, index int, raw json.RawMessage) (uuid.UUID, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		verr.add(index, "id", ReasonRequired, "This field is required.")
		return uuid.Nil, false
	}

	var literal string
	if raw[0] != '"' || json.Unmarshal(raw, &literal) != nil {
		verr.add(index, "products", ReasonUnknownProduct, unknownProduct(string(raw)))
		return uuid.Nil, false
	}
	if strings.TrimSpace(literal) == "" {
		verr.add(index, "id", ReasonRequired, "This field is required.")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(literal)
	if err != nil {
		verr.add(index, "products", ReasonUnknownProduct, unknownProduct(literal))
		return uuid.Nil, false
	}
	return id, true
}

func (v *Validator) currency(verr *ValidationError, index int, code string) (domain.Currency, bool) {
	if code == "" {
		return v.DefaultCurrency(), true
	}
	for _, c := range v.currencies {
		if string(c) == code {
			return c, true
		}
	}
	verr.add(index, "price_currency", ReasonInvalidChoice, fmt.Sprintf("%q is not a valid choice.", code))
	return "", false
}

// decimalField parses a price or quantity. When def is nil the field is required.
func (v *Validator) decimalField(verr *ValidationError, index int, field string, raw json.RawMessage, def *decimal.Decimal) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if def != nil {
			return *def, true
		}
		verr.add(index, field, ReasonRequired, "This field is required.")
		return decimal.Zero, false
	}

	literal := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &literal); err != nil {
			verr.add(index, field, ReasonInvalid, "A valid number is required.")
			return decimal.Zero, false
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(literal))
	if err != nil {
		verr.add(index, field, ReasonInvalid, "A valid number is required.")
		return decimal.Zero, false
	}

	if reason, msg := checkPrecision(d); reason != "" {
		verr.add(index, field, reason, msg)
		return decimal.Zero, false
	}
	if d.IsNegative() {
		verr.add(index, field, ReasonMinValue, "Ensure this value is greater than or equal to 0.")
		return decimal.Zero, false
	}
	return d, true
}

// checkPrecision applies the digit limits of a NUMERIC(10,2) column to the
// literal as written, so "1.500" is rejected even though it fits once rounded.
func checkPrecision(d decimal.Decimal) (string, string) {
	coefficient := d.Coefficient()
	digits := len(coefficient.Abs(coefficient).String())
	exp := int(d.Exponent())

	var total, places int
	switch {
	case exp >= 0:
		total, places = digits+exp, 0
	case digits > -exp:
		total, places = digits, -exp
	default:
		total, places = -exp, -exp
	}
	whole := total - places

	switch {
	case total > maxDigits:
		return ReasonMaxDigits, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits)
	case places > maxDecimalPlaces:
		return ReasonMaxPlaces, fmt.Sprintf("Ensure that there are no more than %d decimal places.", maxDecimalPlaces)
	case whole > maxWholeDigits:
		return ReasonMaxWholeDigits, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxWholeDigits)
	}
	return "", ""
}

func unknownProduct(id string) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", id)
}
