package inventory

import (
	"math"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ApplyDelta calcula la nueva cantidad tras aplicar un movimiento (servicio de dominio).
// Entrada suma, salida resta; una salida que deje el saldo negativo devuelve
// domain.ErrInsufficientStock y la cantidad original.
func ApplyDelta(current int64, movementType string, quantity int64) (int64, error) {
	if quantity < 1 {
		return current, domain.NewValidationError("quantity", "debe ser mayor o igual a 1")
	}
	switch movementType {
	case entity.MovementTypeEntry:
		if quantity > math.MaxInt64-current {
			return current, domain.NewValidationError("quantity", "excede el saldo máximo admitido")
		}
		return current + quantity, nil
	case entity.MovementTypeExit:
		next := current - quantity
		if next < 0 {
			return current, domain.ErrInsufficientStock
		}
		return next, nil
	}
	return current, domain.NewValidationError("type", "debe ser entry o exit")
}

