package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-partsledger/internal/model"
	"go-partsledger/internal/repository"
	"go-partsledger/internal/ws"
	"go-partsledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService manages products and categories.
type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	BulkDeleteProducts(ids []uuid.UUID) (int64, error)
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)

	CreateCategory(req *model.Category, userID string) error
	UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories() ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	// 1. Basic struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Selling price must never be set below cost price
	if req.Price.LessThan(req.CostPrice) {
		return &PricingViolationError{ProductName: req.Name, Price: req.Price, CostPrice: req.CostPrice}
	}

	// 3. De-duplicate SKU by suffixing -1, -2, ... until free
	baseSKU := req.SKU
	counter := 1
	for {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing == nil || existing.ID == uuid.Nil {
			break
		}
		req.SKU = fmt.Sprintf("%s-%d", baseSKU, counter)
		counter++
	}

	// 4. Audit fields and save
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.broadcastProduct("product_created", req, userID, userName)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	if req.Price.LessThan(req.CostPrice) {
		return nil, &PricingViolationError{ProductName: req.Name, Price: req.Price, CostPrice: req.CostPrice}
	}

	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Description = req.Description
		existing.Price = req.Price
		existing.CostPrice = req.CostPrice
		existing.StockQuantity = req.StockQuantity
		existing.MinStockLevel = req.MinStockLevel
		existing.CategoryID = req.CategoryID
		existing.UpdatedBy = userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastProduct("product_updated", updated, userID, userName)
	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) BulkDeleteProducts(ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.productRepo.BulkDelete(ids)
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateCategory(req *model.Category, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.categoryRepo.Create(req)
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category, userID string) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.UpdatedBy = userID
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) broadcastProduct(action string, product *model.Product, userID, userName string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":             product.ID,
				"sku":            product.SKU,
				"name":           product.Name,
				"stock_quantity": product.StockQuantity,
				"low_stock":      product.BelowMinStock(),
				"price":          product.Price,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
