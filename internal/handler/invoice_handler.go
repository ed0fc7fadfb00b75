package handler

import (
	"fmt"
	"strings"
	"time"

	"go-partsledger/internal/invoice"
	"go-partsledger/internal/model"
	"go-partsledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	service  service.PostingService
	renderer *invoice.Renderer
}

func NewInvoiceHandler(s service.PostingService, r *invoice.Renderer) *InvoiceHandler {
	return &InvoiceHandler{service: s, renderer: r}
}

// invoiceEditRequest carries the optional operator overrides accepted by the
// POST variant. Anything left empty falls back to the transaction record.
type invoiceEditRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	PaymentTerms  string `json:"payment_terms"`
	DueDate       string `json:"due_date"` // YYYY-MM-DD
	SalesPerson   string `json:"sales_person"`
	CustomerName  string `json:"customer_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
}

// GetInvoicePDF renders the stored transaction as-is.
func (h *InvoiceHandler) GetInvoicePDF(c *fiber.Ctx) error {
	return h.renderPDF(c, invoiceEditRequest{})
}

// EditInvoicePDF renders with operator edits applied on top of the stored
// transaction. Edits affect only the generated document, never the ledger.
func (h *InvoiceHandler) EditInvoicePDF(c *fiber.Ctx) error {
	var req invoiceEditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	return h.renderPDF(c, req)
}

func (h *InvoiceHandler) renderPDF(c *fiber.Ctx, req invoiceEditRequest) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}

	snap := snapshotFromTransaction(tx)
	if req.CustomerName != "" {
		snap.CustomerName = req.CustomerName
	}
	if req.Address != "" {
		snap.CustomerAddress = req.Address
	}
	if req.Phone != "" {
		snap.CustomerPhone = req.Phone
	}

	meta := invoice.EditMeta{
		InvoiceNumber: req.InvoiceNumber,
		PaymentTerms:  req.PaymentTerms,
		SalesPerson:   req.SalesPerson,
	}
	if meta.InvoiceNumber == "" {
		meta.InvoiceNumber = defaultInvoiceNumber(tx)
	}
	if meta.SalesPerson == "" {
		meta.SalesPerson = tx.SalesPerson
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid due date, expected YYYY-MM-DD"})
		}
		meta.DueDate = due
	}

	pdf, err := h.renderer.Render(snap, meta)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate invoice"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=invoice_%s.pdf", meta.InvoiceNumber))
	return c.Send(pdf)
}

func defaultInvoiceNumber(tx *model.Transaction) string {
	short := strings.ToUpper(strings.ReplaceAll(tx.ID.String(), "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return "INV-" + short
}

func snapshotFromTransaction(tx *model.Transaction) *invoice.Snapshot {
	snap := &invoice.Snapshot{
		Date:        tx.Date,
		VATPercent:  tx.VATPercent,
		TotalAmount: tx.TotalAmount,
		Items:       make([]invoice.Item, 0, len(tx.Items)),
	}
	if tx.Partner != nil {
		snap.CustomerName = tx.Partner.Name
		snap.CustomerAddress = tx.Partner.Address
		snap.CustomerPhone = tx.Partner.Phone
	}
	for _, item := range tx.Items {
		line := invoice.Item{
			Quantity: item.Quantity,
			Price:    item.Price,
			Discount: item.Discount,
		}
		if item.Product != nil {
			line.SKU = item.Product.SKU
			line.Name = item.Product.Name
		}
		snap.Items = append(snap.Items, line)
	}
	return snap
}
