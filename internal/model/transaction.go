package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxSale     TransactionType = "sale"
	TxReturn   TransactionType = "return"
)

// Transaction is a stock-affecting purchase or sale posted against a partner.
// TotalAmount is derived by the poster, never set by callers.
type Transaction struct {
	BaseModel
	Date          time.Time       `gorm:"not null;index" json:"date"`
	Type          TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=purchase sale return"`
	PartnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"partner_id" validate:"uuid_required"`
	Partner       *Partner        `gorm:"foreignKey:PartnerID" json:"partner,omitempty" validate:"-"`
	VATPercent    decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"vat_percent"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"total_amount"`
	SalesPerson   string          `gorm:"type:varchar(100)" json:"sales_person"`
	PaymentMethod string          `gorm:"type:varchar(20);default:'Cash'" json:"payment_method"`

	Items []TransactionItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TransactionItem is one product line within a transaction. Price is captured
// as transacted and stays fixed when the product price changes later.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity      int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price         decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"price"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"discount"` // absolute amount, not percent

	// Stored for compatibility with older clients. Totals always use the
	// transaction-wide VATPercent, this field is never consulted.
	VATPercent decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"vat_percent"`
}
