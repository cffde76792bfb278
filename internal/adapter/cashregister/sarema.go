package cashregister

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/palazzem/cash-register/internal/core/push"
	"github.com/shopspring/decimal"
)

const (
	// maxDescription is the printable width of a receipt line.
	maxDescription = 20
	department     = "1"
	// closes the receipt as a cash payment
	cashPayment = "1T"
)

// EncodeSaremaX1 builds the command stream of a Xditron Sarema X1 register:
// one sale command per row followed by the payment command.
//
//	2.00*"Water"200H1R
//	"Sandwich"590H1R
//	1T
func EncodeSaremaX1(rows []push.Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("nothing to print")
	}
	var buf bytes.Buffer
	for i, row := range rows {
		cents, err := toCents(row.Price)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row.Quantity != "" {
			q, err := decimal.NewFromString(row.Quantity)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid quantity %q", i, row.Quantity)
			}
			buf.WriteString(q.StringFixed(2))
			buf.WriteByte('*')
		}
		fmt.Fprintf(&buf, "%q%dH%sR\r\n", description(row.Description), cents, department)
	}
	buf.WriteString(cashPayment + "\r\n")
	return buf.Bytes(), nil
}

func toCents(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", price)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %q", price)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// description drops characters the register cannot print inside a quoted field.
func description(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if len(s) > maxDescription {
		s = s[:maxDescription]
	}
	return s
}
