package repository

import (
	"go-partsledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll(offset, limit int) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockRankEntry for the top-stock list
type StockRankEntry struct {
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	MinStockLevel int    `json:"min_stock_level"`
}

// NamedValue for top-products / top-customers chart data
type NamedValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardStats is the read-only aggregate snapshot
type DashboardStats struct {
	TotalCustomers   int64               `json:"total_customers"`
	TotalProducts    int64               `json:"total_products"`
	TotalSales       decimal.Decimal     `json:"total_sales"`
	LowStockItems    int64               `json:"low_stock_items"`
	TotalStockValue  decimal.Decimal     `json:"total_stock_value"`  // valuation at cost
	TotalRetailValue decimal.Decimal     `json:"total_retail_value"` // valuation at selling price
	TopStockProducts []StockRankEntry    `json:"top_stock_products"`
	RecentSales      []model.Transaction `json:"recent_sales"`
	TopProducts      []NamedValue        `json:"top_products"`  // by quantity sold
	TopCustomers     []NamedValue        `json:"top_customers"` // by revenue
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll(offset, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Partner").Preload("Items.Product").
		Order("date DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Partner").Preload("Items.Product").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalSales:       decimal.Zero,
		TotalStockValue:  decimal.Zero,
		TotalRetailValue: decimal.Zero,
	}

	// Counts
	if err := r.db.Model(&model.Partner{}).
		Where("type = ?", model.PartnerCustomer).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Total sale revenue
	if err := r.db.Model(&model.Transaction{}).
		Where("type = ?", model.TxSale).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSales).Error; err != nil {
		return nil, err
	}

	// Products below their own minimum stock threshold
	if err := r.db.Model(&model.Product{}).
		Where("stock_quantity < min_stock_level").
		Count(&stats.LowStockItems).Error; err != nil {
		return nil, err
	}

	// Stock valuation at cost and at retail
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock_quantity * cost_price), 0)").
		Scan(&stats.TotalStockValue).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock_quantity * price), 0)").
		Scan(&stats.TotalRetailValue).Error; err != nil {
		return nil, err
	}

	// Top 10 products by current stock
	if err := r.db.Model(&model.Product{}).
		Select("name, stock_quantity, min_stock_level").
		Order("stock_quantity DESC").
		Limit(10).
		Scan(&stats.TopStockProducts).Error; err != nil {
		return nil, err
	}

	// 5 most recent sales
	if err := r.db.Preload("Partner").
		Where("type = ?", model.TxSale).
		Order("date DESC").
		Limit(5).
		Find(&stats.RecentSales).Error; err != nil {
		return nil, err
	}

	// Top 5 products by quantity sold
	if err := r.db.Model(&model.Product{}).
		Select("products.name AS name, SUM(transaction_items.quantity) AS value").
		Joins("JOIN transaction_items ON transaction_items.product_id = products.id").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.type = ?", model.TxSale).
		Group("products.name").
		Order("SUM(transaction_items.quantity) DESC").
		Limit(5).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, err
	}

	// Top 5 customers by revenue
	if err := r.db.Model(&model.Partner{}).
		Select("partners.name AS name, SUM(transactions.total_amount) AS value").
		Joins("JOIN transactions ON transactions.partner_id = partners.id").
		Where("transactions.type = ?", model.TxSale).
		Group("partners.name").
		Order("SUM(transactions.total_amount) DESC").
		Limit(5).
		Scan(&stats.TopCustomers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
