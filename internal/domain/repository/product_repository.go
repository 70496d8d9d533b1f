package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create y Update devuelven domain.ErrDuplicate si el SKU ya existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste los campos descriptivos; nunca escribe quantity.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
