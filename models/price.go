/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// pricePattern is the single accepted input format: an unsigned decimal with
// a point separator, e.g. "19.99". No grouping separators, no currency
// symbols, no exponents, no locale-specific forms.
var pricePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Price is a non-negative monetary amount backed by an exact decimal value.
// Parsing happens once, at the input boundary, against one documented
// format; there is no fallback to locale-specific separators.
type Price struct {
	d decimal.Decimal
}

// ParsePrice parses s in invariant decimal-point notation. Surrounding
// whitespace is trimmed; anything else outside [0-9.] is rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, fmt.Errorf("price must not be empty")
	}
	if !pricePattern.MatchString(s) {
		return Price{}, fmt.Errorf("invalid price %q: expected an unsigned decimal such as 29.99", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{d: d}, nil
}

// MustParsePrice is ParsePrice for constants in tests and fixtures; it
// panics on invalid input.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PriceFromDecimal wraps an existing decimal value.
func PriceFromDecimal(d decimal.Decimal) Price {
	return Price{d: d}
}

// Decimal returns the underlying decimal value.
func (p Price) Decimal() decimal.Decimal { return p.d }

// String formats the price with exactly two fractional digits and a point
// separator, matching the parse format.
func (p Price) String() string { return p.d.StringFixed(2) }

// MulInt returns the price multiplied by an integer quantity.
func (p Price) MulInt(quantity int) Price {
	return Price{d: p.d.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Equal reports whether two prices represent the same amount.
func (p Price) Equal(other Price) bool { return p.d.Equal(other.d) }

// IsZero reports whether the price is zero (including the zero value).
func (p Price) IsZero() bool { return p.d.IsZero() }

// IsPositive reports whether the price is strictly greater than zero.
func (p Price) IsPositive() bool { return p.d.IsPositive() }

// MarshalJSON encodes the price as a plain decimal number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.d.String()), nil
}

// UnmarshalJSON accepts a decimal number or its string form.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		p.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	p.d = d
	return nil
}

// MarshalDynamoDBAttributeValue stores the price as a number attribute.
func (p Price) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: p.d.String()}, nil
}

// UnmarshalDynamoDBAttributeValue reads a number or string attribute.
func (p *Price) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	case *types.AttributeValueMemberNULL:
		p.d = decimal.Zero
		return nil
	default:
		return fmt.Errorf("price: unsupported attribute value type %T", av)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("price: invalid stored value %q: %w", raw, err)
	}
	p.d = d
	return nil
}
