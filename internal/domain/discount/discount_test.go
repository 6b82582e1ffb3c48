package discount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmount_Percentage(t *testing.T) {
	d := &Discount{Type: TypePercentage, Value: decimal.NewFromInt(10)}

	got := d.Amount(decimal.NewFromInt(500))
	assert.True(t, decimal.NewFromInt(50).Equal(got))
}

func TestAmount_PercentageRounds(t *testing.T) {
	d := &Discount{Type: TypePercentage, Value: decimal.NewFromInt(15)}

	// 15% of 99.99 is 14.9985, rounded to 15.00.
	got := d.Amount(decimal.RequireFromString("99.99"))
	assert.True(t, decimal.RequireFromString("15.00").Equal(got))
}

func TestAmount_Fixed(t *testing.T) {
	d := &Discount{Type: TypeFixed, Value: decimal.NewFromInt(200)}

	got := d.Amount(decimal.NewFromInt(500))
	assert.True(t, decimal.NewFromInt(200).Equal(got))
}

func TestAmount_FixedExceedsSubtotal(t *testing.T) {
	// The amount is not capped at the subtotal; the order total is floored
	// at zero downstream.
	d := &Discount{Type: TypeFixed, Value: decimal.NewFromInt(999)}

	got := d.Amount(decimal.NewFromInt(100))
	assert.True(t, decimal.NewFromInt(999).Equal(got))
}

func TestAmount_NegativeValueFloored(t *testing.T) {
	d := &Discount{Type: TypeFixed, Value: decimal.NewFromInt(-50)}

	got := d.Amount(decimal.NewFromInt(100))
	assert.True(t, got.IsZero())
}

func TestAmount_UnknownType(t *testing.T) {
	d := &Discount{Type: "bogus", Value: decimal.NewFromInt(50)}

	got := d.Amount(decimal.NewFromInt(100))
	assert.True(t, got.IsZero())
}
