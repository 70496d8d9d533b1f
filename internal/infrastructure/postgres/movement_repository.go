package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. Note vacía se guarda como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var note *string
	if m.Note != "" {
		note = &m.Note
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, product_id, type, quantity, occurred_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.OccurredAt, note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos del producto, más reciente primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, type, quantity, occurred_at, note, created_at
		FROM movements WHERE product_id = $1
		ORDER BY occurred_at DESC, created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.Movement{}
	for rows.Next() {
		var m entity.Movement
		var note *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.OccurredAt, &note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if note != nil {
			m.Note = *note
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
