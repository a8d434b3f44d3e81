package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents descompone, elimina las marcas diacríticas y recompone.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSKU canonicaliza un SKU: sin acentos, mayúsculas y guiones en
// lugar de espacios. "Pantalla Águila 12" y "PANTALLA-AGUILA-12" son el
// mismo SKU.
func NormalizeSKU(sku string) string {
	clean, _, err := transform.String(stripAccents, strings.TrimSpace(sku))
	if err != nil {
		clean = strings.TrimSpace(sku)
	}
	clean = strings.Join(strings.Fields(clean), "-")
	return strings.ToUpper(clean)
}

// NormalizeCategory canonicaliza una categoría: sin acentos y en minúsculas,
// para que el filtro de listado no distinga "Baterías" de "baterias".
func NormalizeCategory(category string) string {
	clean, _, err := transform.String(stripAccents, strings.TrimSpace(category))
	if err != nil {
		clean = strings.TrimSpace(category)
	}
	return strings.ToLower(clean)
}
