// Package pricing holds the pure order-pricing calculations. Functions here
// have no side effects and are shared by the order coordinator and its tests.
package pricing

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = decimal.NewFromInt(2000)

	// DefaultShippingFee applies when no city rate is supplied.
	DefaultShippingFee = decimal.NewFromInt(50)
)

// LineTotal returns unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Shipping returns the shipping fee for an order. Orders at or above the
// free-shipping threshold ship free; otherwise the positive city fee hint is
// used when present, falling back to the default fee.
func Shipping(subtotal, cityFeeHint decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	if cityFeeHint.IsPositive() {
		return cityFeeHint
	}
	return DefaultShippingFee
}

// Total returns subtotal + shipping - discount, floored at zero and rounded
// to 2 decimal places.
func Total(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total.Round(2)
}
