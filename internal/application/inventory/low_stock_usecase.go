package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// LowStockUseCase reporta los productos con quantity <= min_stock. Solo lectura.
type LowStockUseCase struct {
	productRepo repository.ProductRepository
	generator   LowStockPDFGenerator
}

// NewLowStockUseCase construye el caso de uso. generator puede ser nil si no se expone el PDF.
func NewLowStockUseCase(productRepo repository.ProductRepository, generator LowStockPDFGenerator) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo, generator: generator}
}

// ListLowStock devuelve los productos con stock bajo, por defecto ordenados por quantity asc.
func (uc *LowStockUseCase) ListLowStock(ctx context.Context, q dto.ListQuery) ([]dto.ProductResponse, error) {
	list, err := uc.lowStock(ctx, q)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// LowStockPDF genera el mismo listado como PDF A4 y sugiere un nombre de archivo.
func (uc *LowStockUseCase) LowStockPDF(ctx context.Context, q dto.ListQuery) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("low stock: generador PDF no configurado")
	}
	list, err := uc.lowStock(ctx, q)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	pdfBytes, err = uc.generator.GenerateLowStockPDF(ctx, list, now)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, "stock-bajo-" + now.Format("20060102") + ".pdf", nil
}

func (uc *LowStockUseCase) lowStock(ctx context.Context, q dto.ListQuery) ([]*entity.Product, error) {
	filter, err := q.ToFilter(entity.OrderByQuantity)
	if err != nil {
		return nil, err
	}
	filter.LowStockOnly = true
	return uc.productRepo.List(ctx, filter)
}
