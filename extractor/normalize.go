package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// priceRe finds the first decimal number once locale markers are normalised.
	priceRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// discountRe finds an integer directly followed by a percent sign.
	discountRe = regexp.MustCompile(`(\d+)\s*%`)

	currencyReplacer = strings.NewReplacer("€", "", "EUR", "")
)

// ParsePrice reads a price written in Spanish locale ("1.234,56 €") and
// returns it as a float. Periods are thousands separators and the comma is
// the decimal separator. It reports false when text holds no number.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	text = strings.TrimSpace(currencyReplacer.Replace(text))
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")

	found := priceRe.FindString(text)
	if found == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(found, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// ParseDiscount extracts the first "N%" in text as a float.
func ParseDiscount(text string) (float64, bool) {
	m := discountRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

// parseMetaPrice reads machine-formatted prices from meta tags, which use a
// period as the decimal separator ("1234.56").
func parseMetaPrice(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ",") {
		return ParsePrice(text)
	}
	found := priceRe.FindString(text)
	if found == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(found, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
