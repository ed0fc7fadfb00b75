package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Item is one invoice line as transacted. Prices are snapshots, independent
// of later product changes.
type Item struct {
	SKU      string
	Name     string
	Quantity int
	Price    decimal.Decimal
	Discount decimal.Decimal
}

// Snapshot is the read-only projection of a transaction consumed by the
// renderer. It is assembled by the caller and never mutated here.
type Snapshot struct {
	Date            time.Time
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	VATPercent      decimal.Decimal
	// TotalAmount, when nonzero, overrides the recomputed net for display.
	TotalAmount decimal.Decimal
	Items       []Item
}

// EditMeta carries the operator-editable invoice fields.
type EditMeta struct {
	InvoiceNumber string
	PaymentTerms  string
	DueDate       time.Time
	SalesPerson   string
}

// ItemAmounts are the derived monetary figures for one line. VAT is the
// transaction-wide percent applied identically to every item.
type ItemAmounts struct {
	Gross         decimal.Decimal
	AfterDiscount decimal.Decimal
	VAT           decimal.Decimal
	Net           decimal.Decimal
}

// Totals aggregates ItemAmounts across the whole invoice. Net is the figure
// printed as NET AMT and spelled out in words.
type Totals struct {
	Gross         decimal.Decimal
	Discount      decimal.Decimal
	AfterDiscount decimal.Decimal
	VAT           decimal.Decimal
	Net           decimal.Decimal
}

// ComputeAmounts derives per-item and aggregate figures once, before layout.
// Pure; rounding happens only at presentation time.
func ComputeAmounts(snap *Snapshot) ([]ItemAmounts, Totals) {
	amounts := make([]ItemAmounts, len(snap.Items))
	totals := Totals{
		Gross:         decimal.Zero,
		Discount:      decimal.Zero,
		AfterDiscount: decimal.Zero,
		VAT:           decimal.Zero,
		Net:           decimal.Zero,
	}

	for i, item := range snap.Items {
		gross := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		afterDiscount := gross.Sub(item.Discount)
		vat := afterDiscount.Mul(snap.VATPercent).Div(hundred)
		net := afterDiscount.Add(vat)

		amounts[i] = ItemAmounts{
			Gross:         gross,
			AfterDiscount: afterDiscount,
			VAT:           vat,
			Net:           net,
		}

		totals.Gross = totals.Gross.Add(gross)
		totals.Discount = totals.Discount.Add(item.Discount)
		totals.AfterDiscount = totals.AfterDiscount.Add(afterDiscount)
		totals.VAT = totals.VAT.Add(vat)
		totals.Net = totals.Net.Add(net)
	}

	return amounts, totals
}
