package dto

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/products/{id}/movements.
type CreateMovementRequest struct {
	Type       string     `json:"type"`
	Quantity   int64      `json:"quantity"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Note       *string    `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMovementResponse convierte la entidad en su representación HTTP; note vacía sale como null.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	var note *string
	if m.Note != "" {
		n := m.Note
		note = &n
	}
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
		Note:       note,
		CreatedAt:  m.CreatedAt,
	}
}
