// Package site maps product URLs to the store whose extractor handles them.
package site

import (
	"strings"

	"github.com/use-agent/pricescout/models"
)

// marker pairs a domain substring with the store it identifies.
type marker struct {
	substr string
	store  models.Store
}

// markers is checked in order; the first match wins.
var markers = []marker{
	{"amazon", models.StoreAmazon},
	{"pccomponentes", models.StorePcComponentes},
	{"elcorteingles", models.StoreElCorteIngles},
}

// Classify returns the store whose marker appears in rawURL, or
// models.StoreUnknown when none does.
func Classify(rawURL string) models.Store {
	for _, m := range markers {
		if strings.Contains(rawURL, m.substr) {
			return m.store
		}
	}
	return models.StoreUnknown
}

// DisplayName is the human-readable store name used in error messages.
func DisplayName(s models.Store) string {
	switch s {
	case models.StoreAmazon:
		return "Amazon"
	case models.StorePcComponentes:
		return "PcComponentes"
	case models.StoreElCorteIngles:
		return "El Corte Inglés"
	default:
		return string(s)
	}
}
