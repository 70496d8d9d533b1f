package entity

import "strings"

// Campos por los que se permite ordenar listados de productos.
const (
	OrderByName      = "name"
	OrderBySKU       = "sku"
	OrderByCategory  = "category"
	OrderBySupplier  = "supplier"
	OrderByQuantity  = "quantity"
	OrderByMinStock  = "min_stock"
	OrderByCost      = "cost"
	OrderByPrice     = "price"
	OrderByCreatedAt = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var orderableFields = map[string]bool{
	OrderByName: true, OrderBySKU: true, OrderByCategory: true, OrderBySupplier: true,
	OrderByQuantity: true, OrderByMinStock: true, OrderByCost: true, OrderByPrice: true,
	OrderByCreatedAt: true,
}

// ValidOrderBy indica si el campo pertenece a la lista blanca de ordenamiento.
// Los adaptadores de persistencia interpolan este valor en SQL: nunca aceptar otro.
func ValidOrderBy(field string) bool {
	return orderableFields[field]
}

// ValidOrderDir indica si la dirección es asc o desc.
func ValidOrderDir(dir string) bool {
	return dir == OrderAsc || dir == OrderDesc
}

// ProductFilter criterios de búsqueda para listados de productos.
type ProductFilter struct {
	Search       string // subcadena en name o sku, sin distinguir mayúsculas
	Category     string
	Supplier     string
	LowStockOnly bool // quantity <= min_stock
	OrderBy      string
	OrderDir     string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern devuelve el patrón LIKE (en minúsculas, comodines escapados con \) para Search.
func (f ProductFilter) SearchPattern() string {
	return "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
}
