package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`

	// Price is the selling price, CostPrice the purchase price.
	// Invariant: Price must never drop below CostPrice.
	Price     decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"price"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"cost_price"`

	StockQuantity int `gorm:"default:0" json:"stock_quantity"`
	MinStockLevel int `gorm:"default:5" json:"min_stock_level"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	TransactionItems []TransactionItem `json:"transaction_items,omitempty"`
}

// BelowMinStock reports whether the product needs restocking.
func (p *Product) BelowMinStock() bool {
	return p.StockQuantity < p.MinStockLevel
}
