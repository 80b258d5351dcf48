package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"spanish thousands and decimals", "1.234,56 €", 1234.56, true},
		{"decimal comma", "49,99€", 49.99, true},
		{"integer", "299 €", 299, true},
		{"eur suffix", "15,00 EUR", 15, true},
		{"amazon whole part", "1.299,", 1299, true},
		{"surrounding text", "Precio: 89,95 € IVA incluido", 89.95, true},
		{"large", "12.345.678,90", 12345678.90, true},
		{"empty", "", 0, false},
		{"no digits", "no digits here", 0, false},
		{"only symbol", "€", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParsePrice(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"off suffix", "20% OFF", 20, true},
		{"amazon savings", "-35%", 35, true},
		{"space before sign", "Ahorra 15 %", 15, true},
		{"first wins", "10% + 5%", 10, true},
		{"no percent", "sale", 0, false},
		{"number without percent", "20 euros", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDiscount(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMetaPrice(t *testing.T) {
	got, ok := parseMetaPrice("1234.56")
	assert.True(t, ok)
	assert.Equal(t, 1234.56, got)

	got, ok = parseMetaPrice("1.234,56")
	assert.True(t, ok)
	assert.Equal(t, 1234.56, got)

	_, ok = parseMetaPrice("")
	assert.False(t, ok)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 100.0, round2(99.999999))
	assert.Equal(t, 94.11, round2(79.99/(1-0.15)))
}
