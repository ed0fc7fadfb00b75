package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeAmounts(t *testing.T) {
	snap := &Snapshot{
		VATPercent: dec("10"),
		Items: []Item{
			{Name: "Brake Pad", Quantity: 3, Price: dec("10.000"), Discount: dec("2.000")},
			{Name: "Oil Filter", Quantity: 2, Price: dec("5.000")},
		},
	}

	amounts, totals := ComputeAmounts(snap)

	if len(amounts) != 2 {
		t.Fatalf("got %d item amounts, want 2", len(amounts))
	}

	first := amounts[0]
	if !first.Gross.Equal(dec("30.000")) {
		t.Errorf("item gross = %s, want 30.000", first.Gross)
	}
	if !first.AfterDiscount.Equal(dec("28.000")) {
		t.Errorf("item after discount = %s, want 28.000", first.AfterDiscount)
	}
	if !first.VAT.Equal(dec("2.800")) {
		t.Errorf("item vat = %s, want 2.800", first.VAT)
	}
	if !first.Net.Equal(dec("30.800")) {
		t.Errorf("item net = %s, want 30.800", first.Net)
	}

	if !totals.Gross.Equal(dec("40.000")) {
		t.Errorf("totals gross = %s, want 40.000", totals.Gross)
	}
	if !totals.Discount.Equal(dec("2.000")) {
		t.Errorf("totals discount = %s, want 2.000", totals.Discount)
	}
	if !totals.AfterDiscount.Equal(dec("38.000")) {
		t.Errorf("totals after discount = %s, want 38.000", totals.AfterDiscount)
	}
	if !totals.Net.Equal(dec("41.800")) {
		t.Errorf("totals net = %s, want 41.800", totals.Net)
	}
}

func TestComputeAmountsZeroVAT(t *testing.T) {
	snap := &Snapshot{
		Items: []Item{
			{Quantity: 1, Price: dec("7.500")},
		},
	}

	amounts, totals := ComputeAmounts(snap)
	if !amounts[0].VAT.Equal(decimal.Zero) {
		t.Errorf("vat = %s, want 0", amounts[0].VAT)
	}
	if !totals.Net.Equal(dec("7.500")) {
		t.Errorf("net = %s, want 7.500", totals.Net)
	}
}

func TestComputeAmountsEmptyInvoice(t *testing.T) {
	amounts, totals := ComputeAmounts(&Snapshot{})
	if len(amounts) != 0 {
		t.Errorf("got %d amounts, want 0", len(amounts))
	}
	if !totals.Net.Equal(decimal.Zero) {
		t.Errorf("net = %s, want 0", totals.Net)
	}
}
