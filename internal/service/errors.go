package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors allow callers to handle specific business failures
// programmatically.
var (
	ErrPricingViolation    = errors.New("selling price cannot be less than cost price")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

// PricingViolationError rejects a sale priced below the product's current
// cost price. Detected before any write, so no stock is ever mutated.
type PricingViolationError struct {
	ProductName string
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
}

func (e *PricingViolationError) Error() string {
	return fmt.Sprintf("selling price (%s) cannot be less than cost price (%s) for product '%s'",
		e.Price.StringFixed(3), e.CostPrice.StringFixed(3), e.ProductName)
}

func (e *PricingViolationError) Unwrap() error {
	return ErrPricingViolation
}

// InsufficientStockError rejects a sale whose quantity exceeds the stock
// visible inside the posting unit of work.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
