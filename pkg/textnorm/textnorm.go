// Package textnorm normaliza texto para búsquedas: minúsculas y sin
// diacríticos, de modo que "Depósitos" y "depositos" comparen iguales.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitaDiacriticos descompone (NFD), elimina las marcas combinantes y
// recompone (NFC).
var quitaDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Plegar devuelve s en minúsculas, sin acentos y sin espacios en los
// extremos. Si la transformación falla (entrada no UTF-8 válida) devuelve
// la versión en minúsculas sin más.
func Plegar(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	plegado, _, err := transform.String(quitaDiacriticos, s)
	if err != nil {
		return s
	}
	return plegado
}
