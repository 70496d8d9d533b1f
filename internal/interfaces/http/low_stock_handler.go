package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// LowStockHandler reporte de productos con quantity <= min_stock.
type LowStockHandler struct {
	uc *inventory.LowStockUseCase
}

// NewLowStockHandler construye el handler.
func NewLowStockHandler(uc *inventory.LowStockUseCase) *LowStockHandler {
	return &LowStockHandler{uc: uc}
}

// List godoc
// @Summary      Productos con stock bajo
// @Tags         low-stock
// @Security     Bearer
// @Produce      json
// @Param        order_by   query  string  false  "Campo de orden"  default(quantity)
// @Param        order_dir  query  string  false  "asc|desc"        default(asc)
// @Success      200  {array}   dto.ProductResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/low-stock [get]
func (h *LowStockHandler) List(c *fiber.Ctx) error {
	q, err := orderQuery(c)
	if err != nil {
		return invalidBody(c, err)
	}
	out, err := h.uc.ListLowStock(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         low-stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        order_by   query  string  false  "Campo de orden"  default(quantity)
// @Param        order_dir  query  string  false  "asc|desc"        default(asc)
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/low-stock.pdf [get]
func (h *LowStockHandler) PDF(c *fiber.Ctx) error {
	q, err := orderQuery(c)
	if err != nil {
		return invalidBody(c, err)
	}
	pdfBytes, filename, err := h.uc.LowStockPDF(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// orderQuery el reporte solo admite order_by/order_dir.
func orderQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	return dto.ListQuery{OrderBy: q.OrderBy, OrderDir: q.OrderDir}, nil
}
