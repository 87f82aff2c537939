package advisor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// money renders a dollar amount with thousands separators and two decimals.
func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// moneyWhole renders a dollar amount with separators, dropping trailing zeros.
func moneyWhole(v float64) string {
	return "$" + humanize.Commaf(v)
}

// signedPct renders a percentage with an explicit sign, two decimals.
func signedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// titleWords uppercases the first letter of each space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
