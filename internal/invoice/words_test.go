package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0.000", "Zero Bahraini Dinars Only"},
		{"1.000", "One Bahraini Dinar Only"},
		{"2.000", "Two Bahraini Dinars Only"},
		{"1.500", "One Bahraini Dinar and Five Hundred Fils Only"},
		{"0.250", "Zero Bahraini Dinars and Two Hundred Fifty Fils Only"},
		{"21.000", "Twenty-One Bahraini Dinars Only"},
		{"115.000", "One Hundred Fifteen Bahraini Dinars Only"},
		{"1234.567", "One Thousand Two Hundred Thirty-Four Bahraini Dinars and Five Hundred Sixty-Seven Fils Only"},
		{"1000000.000", "One Million Bahraini Dinars Only"},
		{"30.800", "Thirty Bahraini Dinars and Eight Hundred Fils Only"},
		{"-1.500", "Minus One Bahraini Dinar and Five Hundred Fils Only"},
		{"-21.000", "Minus Twenty-One Bahraini Dinars Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatal(err)
			}
			if got := AmountInWords(amount); got != tt.want {
				t.Errorf("AmountInWords(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountInWordsRoundsToFils(t *testing.T) {
	amount, _ := decimal.NewFromString("1.0004")
	if got := AmountInWords(amount); got != "One Bahraini Dinar Only" {
		t.Errorf("sub-fils remainder should round away, got %q", got)
	}
}

func TestSpellCardinalHyphenation(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{20, "Twenty"},
		{21, "Twenty-One"},
		{99, "Ninety-Nine"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety-Nine"},
		{1001, "One Thousand One"},
	}
	for _, tt := range tests {
		if got := spellCardinal(tt.n); got != tt.want {
			t.Errorf("spellCardinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
