package service

import (
	"errors"
	"fmt"

	"go-partsledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PostingLine is one proposed product line of a transaction.
type PostingLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"` // absolute amount, defaults to zero

	// Accepted and stored per item but never consulted by the totals
	// computation; VAT is transaction-wide.
	VATPercent decimal.Decimal `json:"vat_percent"`
}

// postingResult carries everything the poster must persist: the derived
// monetary figures and the signed stock change per product.
type postingResult struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	Total         decimal.Decimal
	StockDeltas   map[uuid.UUID]int
}

// buildPosting validates a proposed transaction against the product rows
// visible in the caller's unit of work and computes its financial and stock
// effects. It is pure: products are only read, never mutated, so a failed
// posting leaves nothing to roll back beyond the enclosing db transaction.
//
// Lines are processed in input order. Sales are checked against the product's
// *current* cost price and against stock net of deltas accumulated by earlier
// lines in the same batch, so a product repeated across lines cannot
// overdraw.
func buildPosting(txType model.TransactionType, lines []PostingLine, products map[uuid.UUID]*model.Product, vatPercent decimal.Decimal) (*postingResult, error) {
	if len(lines) == 0 {
		return nil, errors.New("transaction must have at least one item")
	}
	if vatPercent.IsNegative() {
		return nil, errors.New("vat_percent cannot be negative")
	}

	result := &postingResult{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		StockDeltas:   make(map[uuid.UUID]int),
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive for product '%s'", product.Name)
		}
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative for product '%s'", product.Name)
		}
		if line.Discount.IsNegative() {
			return nil, fmt.Errorf("discount cannot be negative for product '%s'", product.Name)
		}

		itemTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		result.Subtotal = result.Subtotal.Add(itemTotal.Sub(line.Discount))
		result.TotalDiscount = result.TotalDiscount.Add(line.Discount)

		switch txType {
		case model.TxSale:
			if line.Price.LessThan(product.CostPrice) {
				return nil, &PricingViolationError{
					ProductName: product.Name,
					Price:       line.Price,
					CostPrice:   product.CostPrice,
				}
			}
			available := product.StockQuantity + result.StockDeltas[product.ID]
			if available < line.Quantity {
				return nil, &InsufficientStockError{
					ProductName: product.Name,
					Available:   available,
					Requested:   line.Quantity,
				}
			}
			result.StockDeltas[product.ID] -= line.Quantity
		case model.TxPurchase:
			result.StockDeltas[product.ID] += line.Quantity
		}
		// Returns carry no stock effect.
	}

	vat := result.Subtotal.Mul(vatPercent).Div(hundred)
	result.Total = result.Subtotal.Add(vat)
	return result, nil
}

// reversalDeltas computes the inverse stock effect of previously posted
// items, used when the stock reversal policy replays update/delete.
func reversalDeltas(txType model.TransactionType, items []model.TransactionItem) map[uuid.UUID]int {
	deltas := make(map[uuid.UUID]int)
	for _, item := range items {
		switch txType {
		case model.TxSale:
			deltas[item.ProductID] += item.Quantity
		case model.TxPurchase:
			deltas[item.ProductID] -= item.Quantity
		}
	}
	return deltas
}
