package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/palazzem/cash-register/internal/core/catalog"
	"github.com/palazzem/cash-register/internal/core/receipts"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Catalog *catalog.Service
}

type CreateProductRequest struct {
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Icon         *string         `json:"icon"`
}

// List API
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]receipts.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, receipts.ViewProduct(p))
	}
	return c.JSON(out)
}

// Create API
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	p, err := h.Catalog.Create(c.UserContext(), req.Name, req.DefaultPrice, req.Icon)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(receipts.ViewProduct(*p))
}
