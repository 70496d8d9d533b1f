package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de forma transaccional y consulta el historial.
type MovementUseCase struct {
	txRunner     repository.TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner repository.TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para aplicar un movimiento. OccurredAt nil = ahora.
type MovementInput struct {
	ProductID  string
	Type       string
	Quantity   int64
	OccurredAt *time.Time
	Note       string
}

// ApplyMovement valida el movimiento, bloquea la fila del producto, recalcula el saldo y
// persiste movimiento + saldo en una sola transacción.
//
// Retorna:
//   - *domain.ValidationError   si type no es entry/exit o quantity < 1.
//   - domain.ErrNotFound        si el producto no existe.
//   - domain.ErrInsufficientStock si la salida dejaría el saldo negativo (sin mutación).
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	verr := &domain.ValidationError{}
	if !entity.ValidMovementType(in.Type) {
		verr.Add("type", "debe ser entry o exit")
	}
	if in.Quantity < 1 {
		verr.Add("quantity", "debe ser mayor o igual a 1")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if !entity.ValidID(in.ProductID) {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	occurredAt := now
	if in.OccurredAt != nil && !in.OccurredAt.IsZero() {
		occurredAt = in.OccurredAt.UTC()
	}
	mov := &entity.Movement{
		ID:         entity.NewID(),
		ProductID:  in.ProductID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		OccurredAt: occurredAt,
		Note:       strings.TrimSpace(in.Note),
		CreatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para evitar actualizaciones perdidas entre movimientos concurrentes
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		next, err := inventory.ApplyDelta(product.Quantity, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, next); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewMovementResponse(mov)
	return &out, nil
}

// ListMovements devuelve el historial del producto (más reciente primero) o domain.ErrNotFound.
func (uc *MovementUseCase) ListMovements(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	if !entity.ValidID(productID) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out, nil
}
