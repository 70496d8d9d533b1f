// Package store elige el adaptador de persistencia (SQLite o PostgreSQL) según la configuración.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Store repositorios y runner transaccional del driver configurado.
type Store struct {
	Driver    string
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	TxRunner  repository.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Open conecta con la BD, aplica el esquema y construye los repositorios.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.DriverPostgres,
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverSQLite, "":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		return &Store{
			Driver:    config.DriverSQLite,
			Products:  sqlite.NewProductRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			TxRunner:  sqlite.NewTxRunner(db),
			ping:      sqlDB.PingContext,
			close:     func() { _ = sqlDB.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
}

// Ping verifica la conexión (usado por /health).
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close libera las conexiones.
func (s *Store) Close() {
	s.close()
}
