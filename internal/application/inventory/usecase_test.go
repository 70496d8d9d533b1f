package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	products  *usecase.ProductUseCase
	movements *inventory.MovementUseCase
	lowStock  *inventory.LowStockUseCase
}

type fakePDF struct {
	got []*entity.Product
}

func (f *fakePDF) GenerateLowStockPDF(_ context.Context, products []*entity.Product, _ time.Time) ([]byte, error) {
	f.got = products
	return []byte("%PDF-fake"), nil
}

func newFixture(t *testing.T, gen inventory.LowStockPDFGenerator) fixture {
	t.Helper()
	db, err := sqlite.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	productRepo := sqlite.NewProductRepository(db)
	movRepo := sqlite.NewMovementRepository(db)
	txRunner := sqlite.NewTxRunner(db)
	return fixture{
		products:  usecase.NewProductUseCase(txRunner, productRepo),
		movements: inventory.NewMovementUseCase(txRunner, productRepo, movRepo),
		lowStock:  inventory.NewLowStockUseCase(productRepo, gen),
	}
}

func (f fixture) product(t *testing.T, sku string, qty, minStock int64) string {
	t.Helper()
	out, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Producto " + sku, SKU: sku, Quantity: qty, MinStock: minStock,
		Cost: decimal.NewFromInt(1), Price: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	return out.ID
}

func (f fixture) quantity(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaYSalida(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 0, 0)

	_, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntry, Quantity: 10})
	require.NoError(t, err)
	mov, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeExit, Quantity: 4, Note: " venta "})
	require.NoError(t, err)

	assert.Equal(t, int64(6), f.quantity(t, id))
	require.NotNil(t, mov.Note)
	assert.Equal(t, "venta", *mov.Note)
	assert.Equal(t, entity.MovementTypeExit, mov.Type)
}

func TestApplyMovement_SalidaInsuficienteNoMuta(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 3, 0)

	_, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeExit, Quantity: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.quantity(t, id))

	movs, err := f.movements.ListMovements(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApplyMovement_SalidaExactaDejaCero(t *testing.T) {
	f := newFixture(t, nil)
	id := f.product(t, "A-1", 3, 0)

	_, err := f.movements.ApplyMovement(context.Background(), inventory.MovementInput{ProductID: id, Type: entity.MovementTypeExit, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.quantity(t, id))
}

func TestApplyMovement_Validaciones(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 3, 0)

	_, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: "transfer", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntry, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: "no-existe", Type: entity.MovementTypeEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(3), f.quantity(t, id))
}

func TestApplyMovement_SecuenciaIdaYVuelta(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 5, 0)

	steps := []inventory.MovementInput{
		{Type: entity.MovementTypeEntry, Quantity: 7},
		{Type: entity.MovementTypeExit, Quantity: 7},
		{Type: entity.MovementTypeExit, Quantity: 6},
		{Type: entity.MovementTypeExit, Quantity: 5},
	}
	var failures int
	for _, s := range steps {
		s.ProductID = id
		if _, err := f.movements.ApplyMovement(ctx, s); err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, int64(0), f.quantity(t, id))
}

func TestApplyFromRequest_FechaYNota(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 0, 0)
	when := time.Date(2024, 1, 15, 8, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	out, err := f.movements.ApplyFromRequest(ctx, id, dto.CreateMovementRequest{
		Type: entity.MovementTypeEntry, Quantity: 2, OccurredAt: &when,
	})
	require.NoError(t, err)
	assert.True(t, out.OccurredAt.Equal(when))
	assert.Equal(t, time.UTC, out.OccurredAt.Location())
	assert.Nil(t, out.Note)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_OrdenYProductoInexistente(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 0, 0)
	older := time.Now().Add(-48 * time.Hour)

	_, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntry, Quantity: 1, OccurredAt: &older})
	require.NoError(t, err)
	latest, err := f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntry, Quantity: 2})
	require.NoError(t, err)

	movs, err := f.movements.ListMovements(ctx, id)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, latest.ID, movs[0].ID)

	_, err = f.movements.ListMovements(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// LowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestListLowStock_SoloBajoMinimoOrdenadoPorCantidad(t *testing.T) {
	f := newFixture(t, nil)
	f.product(t, "OK-1", 10, 2)
	f.product(t, "LOW-1", 3, 3)
	f.product(t, "LOW-2", 0, 5)

	list, err := f.lowStock.ListLowStock(context.Background(), dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "LOW-2", list[0].SKU)
	assert.Equal(t, "LOW-1", list[1].SKU)
	for _, p := range list {
		assert.True(t, p.LowStock)
	}
}

func TestListLowStock_MovimientoActualizaReporte(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.product(t, "A-1", 5, 3)

	list, err := f.lowStock.ListLowStock(ctx, dto.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.movements.ApplyMovement(ctx, inventory.MovementInput{ProductID: id, Type: entity.MovementTypeExit, Quantity: 2})
	require.NoError(t, err)
	list, err = f.lowStock.ListLowStock(ctx, dto.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLowStockPDF(t *testing.T) {
	gen := &fakePDF{}
	f := newFixture(t, gen)
	f.product(t, "LOW-1", 1, 3)

	out, filename, err := f.lowStock.LowStockPDF(context.Background(), dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Regexp(t, `^stock-bajo-\d{8}\.pdf$`, filename)
	require.Len(t, gen.got, 1)
	assert.Equal(t, "LOW-1", gen.got[0].SKU)
}

func TestLowStockPDF_SinGenerador(t *testing.T) {
	f := newFixture(t, nil)
	_, _, err := f.lowStock.LowStockPDF(context.Background(), dto.ListQuery{})
	assert.Error(t, err)
}
