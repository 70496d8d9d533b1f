package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Quantity nunca es negativa:
// solo cambia por edición directa (>= 0) o por movimientos validados.
type Product struct {
	ID        string
	Name      string
	SKU       string // único en todo el catálogo
	Category  string
	Supplier  string
	Quantity  int64
	MinStock  int64
	Cost      decimal.Decimal // costo unitario
	Price     decimal.Decimal // precio de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock indica si el producto está en o por debajo del stock mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
