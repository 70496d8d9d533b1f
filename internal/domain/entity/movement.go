package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// Movement es un registro inmutable del libro de movimientos de un producto.
type Movement struct {
	ID         string
	ProductID  string
	Type       string
	Quantity   int64 // siempre >= 1; el signo lo da Type
	OccurredAt time.Time
	Note       string
	CreatedAt  time.Time
}

// ValidMovementType indica si t es un tipo de movimiento soportado.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}
