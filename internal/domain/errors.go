package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError agrupa los mensajes de validación por campo.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError crea un error con un único campo inválido.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add registra un mensaje para el campo.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], msg)
}

// HasErrors indica si se registró al menos un mensaje.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Fields) > 0
}

// Messages devuelve "campo: mensaje" ordenado por campo (útil para reportes de importación).
func (v *ValidationError) Messages() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, m := range v.Fields[k] {
			out = append(out, k+": "+m)
		}
	}
	return out
}

func (v *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(v.Messages(), "; ")
}

func (v *ValidationError) Unwrap() error { return ErrInvalidInput }
