package model

type PartnerType string

const (
	PartnerCustomer PartnerType = "customer"
	PartnerVendor   PartnerType = "vendor"
)

// Partner is a customer or vendor that transactions are posted against.
// Referenced by transactions, never owned by them.
type Partner struct {
	BaseModel
	Name    string      `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Type    PartnerType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=customer vendor"`
	Email   string      `gorm:"type:varchar(255)" json:"email"`
	Phone   string      `gorm:"type:varchar(30)" json:"phone"`
	Address string      `gorm:"type:text" json:"address"`

	Transactions []Transaction `json:"transactions,omitempty"`
}
