package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// ApplyFromRequest adapta el body HTTP al caso de uso ApplyMovement(ctx, MovementInput).
func (uc *MovementUseCase) ApplyFromRequest(ctx context.Context, productID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	input := MovementInput{
		ProductID:  productID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		OccurredAt: in.OccurredAt,
	}
	if in.Note != nil {
		input.Note = *in.Note
	}
	return uc.ApplyMovement(ctx, input)
}
