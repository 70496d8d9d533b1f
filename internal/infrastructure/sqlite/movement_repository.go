package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre SQLite (gorm).
type MovementRepo struct {
	db *gorm.DB
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(db *gorm.DB) *MovementRepo {
	return &MovementRepo{db: db}
}

// Create inserta un movimiento sin tocar la asociación Product.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(toMovementModel(m)).Error; err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos del producto, más reciente primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	var models []movementModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("occurred_at DESC").Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}
