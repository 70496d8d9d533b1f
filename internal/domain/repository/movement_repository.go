package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
}
