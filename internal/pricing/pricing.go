// Package pricing computes checkout totals. It performs no I/O and uses
// decimal arithmetic throughout.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnits is the number of fractional digits money is rounded to.
const minorUnits = 2

// Rules holds the store-wide pricing constants.
type Rules struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	Currency              string
}

// DefaultRules returns 18% tax, free shipping strictly above 999 and a flat
// fee of 50 otherwise, in INR.
func DefaultRules() Rules {
	return Rules{
		TaxRate:               decimal.RequireFromString("0.18"),
		FreeShippingThreshold: decimal.NewFromInt(999),
		ShippingFee:           decimal.NewFromInt(50),
		Currency:              "INR",
	}
}

// ParseRules builds Rules from their textual configuration form.
func ParseRules(taxRate, threshold, fee, currency string) (Rules, error) {
	var r Rules
	var err error

	if r.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return Rules{}, fmt.Errorf("failed to parse tax rate %q: %w", taxRate, err)
	}
	if r.FreeShippingThreshold, err = decimal.NewFromString(threshold); err != nil {
		return Rules{}, fmt.Errorf("failed to parse free shipping threshold %q: %w", threshold, err)
	}
	if r.ShippingFee, err = decimal.NewFromString(fee); err != nil {
		return Rules{}, fmt.Errorf("failed to parse shipping fee %q: %w", fee, err)
	}
	r.Currency = currency

	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate rejects rules that could produce negative totals.
func (r Rules) Validate() error {
	var errs []error
	if r.TaxRate.IsNegative() {
		errs = append(errs, errors.New("tax rate must not be negative"))
	}
	if r.FreeShippingThreshold.IsNegative() {
		errs = append(errs, errors.New("free shipping threshold must not be negative"))
	}
	if r.ShippingFee.IsNegative() {
		errs = append(errs, errors.New("shipping fee must not be negative"))
	}
	if r.Currency == "" {
		errs = append(errs, errors.New("currency is required"))
	}
	return errors.Join(errs...)
}

// Line is a unit price already resolved from the catalog and a positive
// quantity.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns UnitPrice × Quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quote is the result of pricing a set of lines.
type Quote struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
	Currency   string
}

// Price computes subtotal, tax, shipping and grand total.
//
// Lines are expected to be validated by the caller: non-empty, non-negative
// prices, positive quantities.
func (r Rules) Price(lines []Line) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	tax := subtotal.Mul(r.TaxRate).Round(minorUnits)

	shipping := r.ShippingFee
	if subtotal.GreaterThan(r.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Quote{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal.Add(tax).Add(shipping),
		Currency:   r.Currency,
	}
}
