package handler

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/palazzem/cash-register/internal/core/receipts"
)

// Enqueuer schedules receipts for an asynchronous push.
type Enqueuer interface {
	Enqueue(ids ...uuid.UUID) (int, error)
}

type ReceiptHandler struct {
	Service  *receipts.Service
	Backfill Enqueuer
}

type BackfillRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Submit API: stores the receipt and pushes it to every adapter.
func (h *ReceiptHandler) Submit(c *fiber.Ctx) error {
	var req receipts.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "JSON parse error")
	}

	receipt, err := h.Service.Submit(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(receipts.View(receipt))
}

func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
	}

	receipt, err := h.Service.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(receipts.View(receipt))
}

// Push API: sends a stored receipt to the adapters again, nothing is saved.
func (h *ReceiptHandler) Push(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
	}

	if err := h.Service.Backfill(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "pushed", "id": id})
}

// BackfillRange API: queues every receipt dated in [from, to).
func (h *ReceiptHandler) BackfillRange(c *fiber.Ctx) error {
	var req BackfillRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	ids, err := h.Service.ReceiptIDs(c.UserContext(), req.From, req.To)
	if err != nil {
		return writeError(c, err)
	}
	queued, err := h.Backfill.Enqueue(ids...)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"queued": queued})
}
