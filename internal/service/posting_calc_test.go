package service

import (
	"errors"
	"testing"

	"go-partsledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(name string, cost string, stock int) *model.Product {
	p := &model.Product{
		Name:          name,
		CostPrice:     dec(cost),
		StockQuantity: stock,
	}
	p.ID = uuid.New()
	return p
}

func productMap(products ...*model.Product) map[uuid.UUID]*model.Product {
	m := make(map[uuid.UUID]*model.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestBuildPostingSaleTotals(t *testing.T) {
	p := testProduct("Brake Pad", "5.000", 10)
	lines := []PostingLine{
		{ProductID: p.ID, Quantity: 3, Price: dec("10.000"), Discount: dec("2.000")},
	}

	result, err := buildPosting(model.TxSale, lines, productMap(p), dec("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Subtotal.Equal(dec("28.000")) {
		t.Errorf("subtotal = %s, want 28.000", result.Subtotal)
	}
	if !result.TotalDiscount.Equal(dec("2.000")) {
		t.Errorf("total discount = %s, want 2.000", result.TotalDiscount)
	}
	if !result.Total.Equal(dec("30.800")) {
		t.Errorf("total = %s, want 30.800", result.Total)
	}
	if result.StockDeltas[p.ID] != -3 {
		t.Errorf("stock delta = %d, want -3", result.StockDeltas[p.ID])
	}
}

func TestBuildPostingStockDirection(t *testing.T) {
	p := testProduct("Oil Filter", "1.000", 5)

	tests := []struct {
		name   string
		txType model.TransactionType
		want   int
	}{
		{"sale decrements", model.TxSale, -2},
		{"purchase increments", model.TxPurchase, 2},
		{"return leaves stock untouched", model.TxReturn, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []PostingLine{
				{ProductID: p.ID, Quantity: 2, Price: dec("3.000")},
			}
			result, err := buildPosting(tt.txType, lines, productMap(p), decimal.Zero)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := result.StockDeltas[p.ID]; got != tt.want {
				t.Errorf("stock delta = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildPostingPricingViolation(t *testing.T) {
	p := testProduct("Spark Plug", "4.500", 10)
	lines := []PostingLine{
		{ProductID: p.ID, Quantity: 1, Price: dec("4.000")},
	}

	_, err := buildPosting(model.TxSale, lines, productMap(p), decimal.Zero)

	var pricing *PricingViolationError
	if !errors.As(err, &pricing) {
		t.Fatalf("expected PricingViolationError, got %v", err)
	}
	if pricing.ProductName != "Spark Plug" {
		t.Errorf("product name = %q", pricing.ProductName)
	}
	if !errors.Is(err, ErrPricingViolation) {
		t.Error("expected errors.Is(err, ErrPricingViolation)")
	}

	// Purchases may be below cost; only sales are gated.
	if _, err := buildPosting(model.TxPurchase, lines, productMap(p), decimal.Zero); err != nil {
		t.Errorf("purchase below cost should pass, got %v", err)
	}
}

func TestBuildPostingInsufficientStock(t *testing.T) {
	p := testProduct("Air Filter", "1.000", 5)
	lines := []PostingLine{
		{ProductID: p.ID, Quantity: 6, Price: dec("2.000")},
	}

	_, err := buildPosting(model.TxSale, lines, productMap(p), decimal.Zero)

	var stock *InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stock.Available != 5 || stock.Requested != 6 {
		t.Errorf("available/requested = %d/%d, want 5/6", stock.Available, stock.Requested)
	}
}

func TestBuildPostingRepeatedProductCannotOverdraw(t *testing.T) {
	p := testProduct("Wiper Blade", "1.000", 5)
	lines := []PostingLine{
		{ProductID: p.ID, Quantity: 3, Price: dec("2.000")},
		{ProductID: p.ID, Quantity: 3, Price: dec("2.000")},
	}

	_, err := buildPosting(model.TxSale, lines, productMap(p), decimal.Zero)

	var stock *InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("expected InsufficientStockError for second line, got %v", err)
	}
	if stock.Available != 2 {
		t.Errorf("available = %d, want 2 (net of first line)", stock.Available)
	}
}

func TestBuildPostingValidation(t *testing.T) {
	p := testProduct("Battery", "10.000", 5)

	tests := []struct {
		name  string
		lines []PostingLine
		vat   decimal.Decimal
	}{
		{"no items", nil, decimal.Zero},
		{"unknown product", []PostingLine{{ProductID: uuid.New(), Quantity: 1, Price: dec("1")}}, decimal.Zero},
		{"zero quantity", []PostingLine{{ProductID: p.ID, Quantity: 0, Price: dec("1")}}, decimal.Zero},
		{"negative price", []PostingLine{{ProductID: p.ID, Quantity: 1, Price: dec("-1")}}, decimal.Zero},
		{"negative discount", []PostingLine{{ProductID: p.ID, Quantity: 1, Price: dec("20"), Discount: dec("-1")}}, decimal.Zero},
		{"negative vat", []PostingLine{{ProductID: p.ID, Quantity: 1, Price: dec("20")}}, dec("-5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildPosting(model.TxSale, tt.lines, productMap(p), tt.vat); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReversalDeltas(t *testing.T) {
	productID := uuid.New()
	items := []model.TransactionItem{
		{ProductID: productID, Quantity: 4},
		{ProductID: productID, Quantity: 2},
	}

	if got := reversalDeltas(model.TxSale, items)[productID]; got != 6 {
		t.Errorf("sale reversal = %d, want +6", got)
	}
	if got := reversalDeltas(model.TxPurchase, items)[productID]; got != -6 {
		t.Errorf("purchase reversal = %d, want -6", got)
	}
	if got := reversalDeltas(model.TxReturn, items)[productID]; got != 0 {
		t.Errorf("return reversal = %d, want 0", got)
	}
}
