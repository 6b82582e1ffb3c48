package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	assert.True(t, dec("1700").Equal(LineTotal(dec("850"), 2)))
	assert.True(t, dec("0").Equal(LineTotal(dec("850"), 0)))
	assert.True(t, dec("1.50").Equal(LineTotal(dec("0.50"), 3)))
}

func TestShipping(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		hint     string
		want     string
	}{
		{"below threshold no hint", "200", "0", "50"},
		{"below threshold with city fee", "200", "150", "150"},
		{"negative hint falls back", "200", "-10", "50"},
		{"at threshold", "2000", "150", "0"},
		{"above threshold", "5000", "0", "0"},
		{"just under threshold", "1999.99", "0", "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shipping(dec(tt.subtotal), dec(tt.hint))
			assert.True(t, dec(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		shipping string
		discount string
		want     string
	}{
		{"no discount", "200", "50", "0", "250"},
		{"with discount", "500", "50", "50", "500"},
		{"discount exceeds order", "100", "50", "999", "0"},
		{"rounds to cents", "100.005", "0", "0", "100.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(dec(tt.subtotal), dec(tt.shipping), dec(tt.discount))
			assert.True(t, dec(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}
