// seed carga productos desde un CSV directamente en la base configurada (DB_DRIVER, SQLITE_PATH, ...),
// usando las mismas reglas que POST /api/products/import.
//
// Uso: go run ./cmd/seed [ruta/productos.csv] [create|update|upsert] [--dry-run]
// Por defecto lee docs/productos_ejemplo.csv en modo upsert.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/store"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	csvPath := "docs/productos_ejemplo.csv"
	mode := dto.ImportModeUpsert
	apply := true
	var positional []string
	for _, a := range os.Args[1:] {
		if a == "--dry-run" {
			apply = false
			continue
		}
		positional = append(positional, a)
	}
	if len(positional) > 0 {
		csvPath = positional[0]
	}
	if len(positional) > 1 {
		mode = positional[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	data, err := os.ReadFile(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("leer CSV")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("abrir base de datos")
	}
	defer st.Close()

	report, err := catalog.NewCSVUseCase(st.TxRunner, st.Products).Import(ctx, data, mode, apply)
	if err != nil {
		log.Error().Err(err).Msg("importación rechazada")
		st.Close()
		os.Exit(1)
	}

	for _, r := range report.Rows {
		if r.Action == dto.ImportActionInvalid {
			log.Warn().Int("row", r.RowNumber).Str("sku", r.SKU).Str("errors", strings.Join(r.Errors, "; ")).Msg("fila inválida")
		}
	}
	log.Info().
		Str("mode", report.Mode).
		Bool("applied", report.Applied).
		Int("create", report.Summary.Create).
		Int("update", report.Summary.Update).
		Int("skip", report.Summary.Skip).
		Int("invalid", report.Summary.Invalid).
		Msg("importación finalizada")
}
