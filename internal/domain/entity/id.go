package entity

import "github.com/google/uuid"

// NewID genera el identificador de una entidad nueva.
func NewID() string {
	return uuid.New().String()
}

// ValidID indica si id tiene forma de identificador de entidad (UUID). Un id mal formado
// nunca corresponde a un registro existente.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
