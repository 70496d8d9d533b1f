package dto

import (
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP. Details lleva los mensajes por campo en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// ListQuery parámetros comunes de filtrado y orden de listados.
type ListQuery struct {
	Search   string `query:"search" validate:"max=200"`
	Category string `query:"category" validate:"max=100"`
	Supplier string `query:"supplier" validate:"max=100"`
	OrderBy  string `query:"order_by"`
	OrderDir string `query:"order_dir"`
}

// ToFilter normaliza la consulta y valida el orden contra la lista blanca.
// defaultOrderBy se usa cuando order_by viene vacío; la dirección por defecto es asc.
func (q ListQuery) ToFilter(defaultOrderBy string) (entity.ProductFilter, error) {
	if err := Validate(q); err != nil {
		return entity.ProductFilter{}, err
	}
	f := entity.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		Supplier: strings.TrimSpace(q.Supplier),
		OrderBy:  strings.ToLower(strings.TrimSpace(q.OrderBy)),
		OrderDir: strings.ToLower(strings.TrimSpace(q.OrderDir)),
	}
	if f.OrderBy == "" {
		f.OrderBy = defaultOrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = entity.OrderAsc
	}
	verr := &domain.ValidationError{}
	if !entity.ValidOrderBy(f.OrderBy) {
		verr.Add("order_by", "campo de orden no permitido")
	}
	if !entity.ValidOrderDir(f.OrderDir) {
		verr.Add("order_dir", "debe ser asc o desc")
	}
	if verr.HasErrors() {
		return entity.ProductFilter{}, verr
	}
	return f, nil
}
