package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	Category string          `json:"category" validate:"max=100"`
	Supplier string          `json:"supplier" validate:"max=100"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	MinStock int64           `json:"min_stock" validate:"gte=0"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualización parcial; campos nil no se modifican.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU      *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Supplier *string          `json:"supplier" validate:"omitempty,max=100"`
	Quantity *int64           `json:"quantity" validate:"omitempty,gte=0"`
	MinStock *int64           `json:"min_stock" validate:"omitempty,gte=0"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto, con el indicador derivado low_stock.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	Quantity  int64           `json:"quantity"`
	MinStock  int64           `json:"min_stock"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewProductResponse convierte la entidad en su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Supplier:  p.Supplier,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Cost:      p.Cost,
		Price:     p.Price,
		LowStock:  p.LowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductListResponse convierte una lista de entidades; nunca devuelve nil.
func NewProductListResponse(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
