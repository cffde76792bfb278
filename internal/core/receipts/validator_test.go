package receipts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogStub struct {
	products map[uuid.UUID]domain.Product
	err      error
	calls    int
}

func (c *catalogStub) ProductsByID(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := map[uuid.UUID]domain.Product{}
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newCatalog(t *testing.T, names ...string) (*catalogStub, []domain.Product) {
	t.Helper()
	c := &catalogStub{products: map[uuid.UUID]domain.Product{}}
	var list []domain.Product
	for _, name := range names {
		p, err := domain.NewProduct(name, domain.NewMoney(decimal.RequireFromString("3.00"), domain.EUR), nil)
		require.NoError(t, err)
		c.products[p.ID] = *p
		list = append(list, *p)
	}
	return c, list
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func ref(id uuid.UUID) json.RawMessage {
	return raw(`"` + id.String() + `"`)
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestValidateResolvesItems(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich", "Water")
	v := NewValidator(catalog, domain.EUR)

	items, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"5.90"`)},
		{ID: ref(products[1].ID), Price: raw(`2`), PriceCurrency: "EUR", Quantity: raw(`"1.68"`)},
	}})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Sandwich", items[0].Product.Name)
	assert.Equal(t, "5.90 EUR", items[0].Price.String())
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(1)))

	assert.Equal(t, "2.00 EUR", items[1].Price.String())
	assert.Equal(t, "1.68", items[1].Quantity.String())
	assert.Equal(t, 1, catalog.calls)
}

func TestValidateEmptyList(t *testing.T) {
	catalog, _ := newCatalog(t)
	v := NewValidator(catalog, domain.EUR)

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{}})
	verr := validationError(t, err)
	assert.Equal(t, map[string][]string{"products": {"This list may not be empty."}}, verr.Fields())
	assert.True(t, verr.HasReason(ReasonEmptyList))
	assert.Zero(t, catalog.calls)

	_, err = v.Validate(context.Background(), SubmitRequest{})
	verr = validationError(t, err)
	assert.Equal(t, map[string][]string{"products": {"This field is required."}}, verr.Fields())
}

func TestValidateCurrencyWhitelist(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich")
	v := NewValidator(catalog, domain.EUR)

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"5.90"`), PriceCurrency: "USD"},
	}})
	verr := validationError(t, err)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "price_currency", verr.Errors[0].Field)
	assert.Equal(t, ReasonInvalidChoice, verr.Errors[0].Reason)
	assert.Equal(t, `"USD" is not a valid choice.`, verr.Errors[0].Message)
}

func TestValidateUnknownProduct(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich")
	v := NewValidator(catalog, domain.EUR)
	missing := uuid.New()

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"5.90"`)},
		{ID: ref(missing), Price: raw(`"1.00"`)},
		{ID: raw(`"not-a-uuid"`), Price: raw(`"1.00"`)},
	}})
	verr := validationError(t, err)
	require.Len(t, verr.Errors, 2)
	for _, fe := range verr.Errors {
		assert.Equal(t, "products", fe.Field)
		assert.Equal(t, ReasonUnknownProduct, fe.Reason)
	}
	assert.Equal(t, `Invalid pk "`+missing.String()+`" - object does not exist.`, verr.Errors[1].Message)
	assert.Equal(t, 1, verr.Errors[1].Index)
}

func TestValidateDecimals(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich")
	v := NewValidator(catalog, domain.EUR)
	id := ref(products[0].ID)

	tests := []struct {
		name   string
		item   RawItem
		field  string
		reason string
	}{
		{"missing price", RawItem{ID: id}, "price", ReasonRequired},
		{"null price", RawItem{ID: id, Price: raw(`null`)}, "price", ReasonRequired},
		{"not a number", RawItem{ID: id, Price: raw(`"abc"`)}, "price", ReasonInvalid},
		{"too many places", RawItem{ID: id, Price: raw(`"1.005"`)}, "price", ReasonMaxPlaces},
		{"trailing zero place", RawItem{ID: id, Price: raw(`"1.500"`)}, "price", ReasonMaxPlaces},
		{"too many digits", RawItem{ID: id, Price: raw(`"12345678901"`)}, "price", ReasonMaxDigits},
		{"too many whole digits", RawItem{ID: id, Price: raw(`"123456789.0"`)}, "price", ReasonMaxWholeDigits},
		{"negative price", RawItem{ID: id, Price: raw(`"-1.00"`)}, "price", ReasonMinValue},
		{"negative quantity", RawItem{ID: id, Price: raw(`"1.00"`), Quantity: raw(`-2`)}, "quantity", ReasonMinValue},
		{"quantity places", RawItem{ID: id, Price: raw(`"1.00"`), Quantity: raw(`"0.125"`)}, "quantity", ReasonMaxPlaces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{tt.item}})
			verr := validationError(t, err)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Equal(t, tt.reason, verr.Errors[0].Reason)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich")
	v := NewValidator(catalog, domain.EUR)

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"1.00"`), PriceCurrency: "GBP"},
		{Price: raw(`"x"`)},
	}})
	verr := validationError(t, err)
	fields := verr.Fields()
	assert.Contains(t, fields, "price_currency")
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "price")
}

func TestValidateCatalogFailure(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich")
	catalog.err = errors.New("connection refused")
	v := NewValidator(catalog)

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"1.00"`)},
	}})
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Equal(t, domain.EUR, v.DefaultCurrency())
}

func TestValidateNilProductID(t *testing.T) {
	catalog, products := newCatalog(t, "Sandwich", "Water", "Cheese")
	v := NewValidator(catalog, domain.EUR)

	_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(uuid.Nil), Price: raw(`"1.00"`)},
	}})
	verr := validationError(t, err)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, ReasonUnknownProduct, verr.Errors[0].Reason)
	assert.Equal(t, `Invalid pk "00000000-0000-0000-0000-000000000000" - object does not exist.`, verr.Errors[0].Message)

	_, err = v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
		{ID: ref(products[0].ID), Price: raw(`"5.90"`)},
		{ID: ref(products[1].ID), Price: raw(`"2.00"`)},
		{ID: ref(uuid.Nil), Price: raw(`"1.00"`)},
		{ID: ref(products[2].ID), Price: raw(`"1.00"`)},
	}})
	verr = validationError(t, err)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, 2, verr.Errors[0].Index)
}

func TestValidateProductIDTypes(t *testing.T) {
	catalog, _ := newCatalog(t, "Sandwich")
	v := NewValidator(catalog, domain.EUR)

	tests := []struct {
		name   string
		id     json.RawMessage
		field  string
		reason string
	}{
		{"missing", nil, "id", ReasonRequired},
		{"null", raw(`null`), "id", ReasonRequired},
		{"blank", raw(`"  "`), "id", ReasonRequired},
		{"number", raw(`42`), "products", ReasonUnknownProduct},
		{"object", raw(`{"id":1}`), "products", ReasonUnknownProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(context.Background(), SubmitRequest{Products: []RawItem{
				{ID: tt.id, Price: raw(`"1.00"`)},
			}})
			verr := validationError(t, err)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Equal(t, tt.reason, verr.Errors[0].Reason)
		})
	}
	assert.Zero(t, catalog.calls)
}
