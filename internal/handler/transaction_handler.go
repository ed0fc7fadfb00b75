package handler

import (
	"errors"

	"go-partsledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.PostingService
}

func NewTransactionHandler(s service.PostingService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// postingErrorStatus maps posting failures onto HTTP statuses. Business rule
// violations are client errors, missing records are 404s.
func postingErrorStatus(err error) int {
	var pricing *service.PricingViolationError
	var stock *service.InsufficientStockError
	switch {
	case errors.As(err, &pricing), errors.As(err, &stock):
		return 400
	case errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrPartnerNotFound):
		return 404
	default:
		return 400
	}
}

func (h *TransactionHandler) PostTransaction(c *fiber.Ctx) error {
	var req service.PostTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.PostTransaction(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(postingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req service.PostTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.UpdateTransaction(txID, &req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(postingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Transaction updated", "data": tx})
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	deleted, err := h.service.DeleteTransaction(txID, getUserID(c))
	if err != nil {
		return c.Status(postingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if !deleted {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	offset := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	transactions, err := h.service.GetAllTransactions(offset, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx)
}
