package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Mount registers the back office API on r.
func Mount(r fiber.Router, products *ProductHandler, receipts *ReceiptHandler) {
	r.Get("/products", products.List)
	r.Post("/products", products.Create)

	r.Post("/receipts", receipts.Submit)
	r.Post("/receipts/backfill", receipts.BackfillRange)
	r.Get("/receipts/:id", receipts.Get)
	r.Post("/receipts/:id/push", receipts.Push)
}
