package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen. El CHECK de quantity respalda en BD
// la invariante de saldo no negativo que aplica el caso de uso.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		name        VARCHAR(200) NOT NULL,
		sku         VARCHAR(100) NOT NULL UNIQUE,
		category    VARCHAR(100) NOT NULL DEFAULT '',
		supplier    VARCHAR(100) NOT NULL DEFAULT '',
		quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		min_stock   BIGINT NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
		cost        NUMERIC NOT NULL DEFAULT 0 CHECK (cost >= 0),
		price       NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_supplier ON products (supplier)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id           UUID PRIMARY KEY,
		product_id   UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		type         VARCHAR(10) NOT NULL CHECK (type IN ('entry', 'exit')),
		quantity     BIGINT NOT NULL CHECK (quantity >= 1),
		occurred_at  TIMESTAMPTZ NOT NULL,
		note         TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product ON movements (product_id, occurred_at DESC)`,
}

// EnsureSchema aplica el esquema de forma idempotente al iniciar.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
