package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bahraini Dinar is subdivided into 1000 Fils, so amounts are fixed-point to
// three decimal places.
var thousand = decimal.NewFromInt(1000)

var onesWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords spells an invoice total as "<dinars> Bahraini Dinar(s)
// [and <fils> Fils] Only". Pure and side-effect free.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(3)
	abs := rounded.Abs()
	dinars := abs.IntPart()
	fils := abs.Sub(decimal.NewFromInt(dinars)).Mul(thousand).IntPart()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteString("Minus ")
	}
	b.WriteString(spellCardinal(dinars))
	if dinars == 1 {
		b.WriteString(" Bahraini Dinar")
	} else {
		b.WriteString(" Bahraini Dinars")
	}

	if fils > 0 {
		b.WriteString(" and ")
		b.WriteString(spellCardinal(fils))
		b.WriteString(" Fils")
	}

	b.WriteString(" Only")
	return b.String()
}

// spellCardinal converts a non-negative integer to standard English cardinal
// words with hyphenated compound tens ("Twenty-One").
func spellCardinal(n int64) string {
	if n < 0 {
		return "Minus " + spellCardinal(-n)
	}
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		word := tensWords[n/10]
		if n%10 != 0 {
			word += "-" + onesWords[n%10]
		}
		return word
	}
	if n < 1000 {
		word := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			word += " " + spellCardinal(n%100)
		}
		return word
	}
	if n < 1000000 {
		word := spellCardinal(n/1000) + " Thousand"
		if n%1000 != 0 {
			word += " " + spellCardinal(n%1000)
		}
		return word
	}
	word := spellCardinal(n/1000000) + " Million"
	if n%1000000 != 0 {
		word += " " + spellCardinal(n%1000000)
	}
	return word
}
