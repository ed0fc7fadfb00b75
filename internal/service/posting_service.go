package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-partsledger/internal/model"
	"go-partsledger/internal/repository"
	"go-partsledger/internal/ws"
	"go-partsledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockReversalPolicy decides whether update/delete replays a transaction's
// original stock effect. Default is "none": stock history is append-only and
// edits recompute on top of current stock. "reverse" replays the inverse
// effect inside the same unit of work.
type StockReversalPolicy string

const (
	ReversalNone    StockReversalPolicy = "none"
	ReversalReplay  StockReversalPolicy = "reverse"
	reversalDefault                     = ReversalNone
)

// ParseStockReversalPolicy maps a config string to a policy, falling back to
// the reference behavior for anything unrecognized.
func ParseStockReversalPolicy(s string) StockReversalPolicy {
	switch StockReversalPolicy(s) {
	case ReversalNone, ReversalReplay:
		return StockReversalPolicy(s)
	default:
		return reversalDefault
	}
}

// PostTransactionRequest is the typed request body for posting a transaction.
// Optional fields default explicitly at the boundary instead of being probed
// at runtime.
type PostTransactionRequest struct {
	Type          model.TransactionType `json:"type" validate:"required,oneof=purchase sale return"`
	PartnerID     uuid.UUID             `json:"partner_id" validate:"uuid_required"`
	Items         []PostingLine         `json:"items" validate:"required,min=1,dive"`
	VATPercent    decimal.Decimal       `json:"vat_percent"`
	SalesPerson   string                `json:"sales_person"`
	PaymentMethod string                `json:"payment_method"`
}

type PostingService interface {
	PostTransaction(req *PostTransactionRequest, userID, userName string) (*model.Transaction, error)
	UpdateTransaction(id uuid.UUID, req *PostTransactionRequest, userID, userName string) (*model.Transaction, error)
	DeleteTransaction(id uuid.UUID, userID string) (bool, error)
	GetAllTransactions(offset, limit int) ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type postingService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	policy      StockReversalPolicy
}

func NewPostingService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub, policy StockReversalPolicy) PostingService {
	return &postingService{
		productRepo: pRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
		policy:      policy,
	}
}

func (s *postingService) PostTransaction(req *PostTransactionRequest, userID, userName string) (*model.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkPartner(tx, req.PartnerID); err != nil {
			return err
		}

		// Lock every referenced product row up front. Ordered locking keeps
		// two concurrent postings against the same products serialized.
		products, err := s.lockProducts(tx, productIDs(req.Items, nil))
		if err != nil {
			return err
		}

		result, err := buildPosting(req.Type, req.Items, products, req.VATPercent)
		if err != nil {
			return err
		}

		record := &model.Transaction{
			Date:          time.Now(),
			Type:          req.Type,
			PartnerID:     req.PartnerID,
			VATPercent:    req.VATPercent,
			TotalAmount:   result.Total,
			SalesPerson:   req.SalesPerson,
			PaymentMethod: paymentMethodOrDefault(req.PaymentMethod),
		}
		record.CreatedBy = userID
		record.UpdatedBy = userID
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if err := s.insertItems(tx, record.ID, req.Items, userID); err != nil {
			return err
		}

		if err := s.applyDeltas(tx, products, result.StockDeltas, userID); err != nil {
			return err
		}

		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastPosting("transaction_posted", created, userID, userName)

	return s.txRepo.FindByID(created.ID)
}

func (s *postingService) UpdateTransaction(id uuid.UUID, req *PostTransactionRequest, userID, userName string) (*model.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Transaction
		if err := tx.Preload("Items").First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if err := checkPartner(tx, req.PartnerID); err != nil {
			return err
		}

		// The original items' stock effect is only unwound under the
		// "reverse" policy; by default replacement recomputes on top of the
		// stock as it stands today.
		var reversal map[uuid.UUID]int
		if s.policy == ReversalReplay {
			reversal = reversalDeltas(existing.Type, existing.Items)
		}

		products, err := s.lockProducts(tx, productIDs(req.Items, reversal))
		if err != nil {
			return err
		}

		// Validate against the stock the reversal would leave behind.
		adjusted := products
		if len(reversal) > 0 {
			adjusted = make(map[uuid.UUID]*model.Product, len(products))
			for pid, p := range products {
				cp := *p
				cp.StockQuantity += reversal[pid]
				adjusted[pid] = &cp
			}
		}

		result, err := buildPosting(req.Type, req.Items, adjusted, req.VATPercent)
		if err != nil {
			return err
		}
		for pid, d := range reversal {
			result.StockDeltas[pid] += d
		}

		// Replace all items, recompute fields identically to creation.
		if err := tx.Unscoped().Where("transaction_id = ?", existing.ID).Delete(&model.TransactionItem{}).Error; err != nil {
			return err
		}
		if err := s.insertItems(tx, existing.ID, req.Items, userID); err != nil {
			return err
		}

		existing.Type = req.Type
		existing.PartnerID = req.PartnerID
		existing.VATPercent = req.VATPercent
		existing.TotalAmount = result.Total
		existing.SalesPerson = req.SalesPerson
		existing.PaymentMethod = paymentMethodOrDefault(req.PaymentMethod)
		existing.UpdatedBy = userID
		existing.Items = nil
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if err := s.applyDeltas(tx, products, result.StockDeltas, userID); err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastPosting("transaction_updated", updated, userID, userName)

	return s.txRepo.FindByID(updated.ID)
}

func (s *postingService) DeleteTransaction(id uuid.UUID, userID string) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Transaction
		if err := tx.Preload("Items").First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if s.policy == ReversalReplay {
			reversal := reversalDeltas(existing.Type, existing.Items)
			ids := make([]uuid.UUID, 0, len(reversal))
			for pid := range reversal {
				ids = append(ids, pid)
			}
			sortUUIDs(ids)
			products, err := s.lockProducts(tx, ids)
			if err != nil {
				return err
			}
			if err := s.applyDeltas(tx, products, reversal, userID); err != nil {
				return err
			}
		}

		// Items first, then the transaction.
		if err := tx.Where("transaction_id = ?", existing.ID).Delete(&model.TransactionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *postingService) GetAllTransactions(offset, limit int) ([]model.Transaction, error) {
	return s.txRepo.FindAll(offset, limit)
}

func (s *postingService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func validateRequest(req *PostTransactionRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func checkPartner(tx *gorm.DB, partnerID uuid.UUID) error {
	var partner model.Partner
	if err := tx.First(&partner, "id = ?", partnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartnerNotFound
		}
		return err
	}
	return nil
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return "Cash"
	}
	return method
}

// productIDs collects the unique product ids touched by the new lines plus
// any ids carrying a reversal delta, sorted for deterministic lock order.
func productIDs(lines []PostingLine, extra map[uuid.UUID]int) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	for _, line := range lines {
		seen[line.ProductID] = struct{}{}
	}
	for pid := range extra {
		seen[pid] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(seen))
	for pid := range seen {
		ids = append(ids, pid)
	}
	sortUUIDs(ids)
	return ids
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}

func (s *postingService) lockProducts(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*model.Product, error) {
	locked, err := s.productRepo.LockByIDs(tx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*model.Product, len(locked))
	for i := range locked {
		products[locked[i].ID] = &locked[i]
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}
	return products, nil
}

func (s *postingService) insertItems(tx *gorm.DB, transactionID uuid.UUID, lines []PostingLine, userID string) error {
	for _, line := range lines {
		item := model.TransactionItem{
			TransactionID: transactionID,
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			Price:         line.Price,
			Discount:      line.Discount,
			VATPercent:    line.VATPercent,
		}
		item.CreatedBy = userID
		item.UpdatedBy = userID
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *postingService) applyDeltas(tx *gorm.DB, products map[uuid.UUID]*model.Product, deltas map[uuid.UUID]int, userID string) error {
	for pid, delta := range deltas {
		if delta == 0 {
			continue
		}
		product := products[pid]
		if err := s.productRepo.UpdateStock(tx, pid, product.StockQuantity+delta, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *postingService) broadcastPosting(action string, record *model.Transaction, userID, userName string) {
	if s.wsHub == nil || record == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"transaction": map[string]interface{}{
				"id":           record.ID,
				"type":         record.Type,
				"partner_id":   record.PartnerID,
				"total_amount": record.TotalAmount,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": fmt.Sprintf("%s posted a %s transaction", userName, record.Type),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
