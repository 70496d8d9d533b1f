package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// LowStockPDFGenerator genera el reporte imprimible de productos con stock bajo.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
