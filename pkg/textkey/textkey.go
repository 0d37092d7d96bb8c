// Package textkey normaliza texto libre (nombres de producto) a una llave comparable:
// sin tildes, en minúsculas y con espacios colapsados.
package textkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Key devuelve la forma normalizada de s. "Pegante Cerámico  Ácido" -> "pegante ceramico acido".
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(folder.String(stripped)), " ")
}
