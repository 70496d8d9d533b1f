package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// CSVHandler importación y exportación del catálogo en CSV.
type CSVHandler struct {
	uc       *catalog.CSVUseCase
	maxBytes int64
}

// NewCSVHandler construye el handler. maxBytes <= 0 desactiva el límite propio (queda el BodyLimit de Fiber).
func NewCSVHandler(uc *catalog.CSVUseCase, maxBytes int64) *CSVHandler {
	return &CSVHandler{uc: uc, maxBytes: maxBytes}
}

// Export godoc
// @Summary      Exportar productos a CSV
// @Description  Mismos filtros y orden que GET /api/products.
// @Tags         csv
// @Security     Bearer
// @Produce      text/csv
// @Param        search     query  string  false  "Subcadena en nombre o SKU"
// @Param        category   query  string  false  "Categoría exacta"
// @Param        supplier   query  string  false  "Proveedor exacto"
// @Param        order_by   query  string  false  "Campo de orden"  default(name)
// @Param        order_dir  query  string  false  "asc|desc"        default(asc)
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/products.csv [get]
func (h *CSVHandler) Export(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.Export(c.Context(), &buf, q); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.csv"`)
	return c.Send(buf.Bytes())
}

// Import godoc
// @Summary      Importar productos desde CSV
// @Description  Con apply=false solo devuelve el reporte por fila. Con apply=true persiste cada fila válida.
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "CSV con sku,name,category,supplier,quantity,cost,price,min_stock"
// @Param        apply  query     bool    false  "Persistir cambios"  default(false)
// @Param        mode   query     string  false  "create|update|upsert"  default(upsert)
// @Success      200  {object}  dto.ImportReport
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *CSVHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.NewValidationError("file", "es requerido"))
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "archivo demasiado grande"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, err)
	}

	report, err := h.uc.Import(c.Context(), data, c.Query("mode"), c.QueryBool("apply", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
