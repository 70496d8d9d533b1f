package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Base en memoria por test para evitar colisiones entre tests.
	db, err := sqlite.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func newProduct(sku, name string, qty, minStock int64) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Category:  "Ferretería",
		Supplier:  "Acme",
		Quantity:  qty,
		MinStock:  minStock,
		Cost:      decimal.RequireFromString("10.50"),
		Price:     decimal.RequireFromString("15.00"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seed(t *testing.T, repo *sqlite.ProductRepo, products ...*entity.Product) {
	t.Helper()
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func skus(list []*entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.SKU)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_CreateYGet(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	ctx := context.Background()
	p := newProduct("A-1", "Tornillo", 5, 2)
	seed(t, repo, p)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tornillo", got.Name)
	assert.Equal(t, int64(5), got.Quantity)
	assert.True(t, got.Cost.Equal(decimal.RequireFromString("10.5")))

	bySKU, err := repo.GetBySKU(ctx, "A-1")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, p.ID, bySKU.ID)
}

func TestProductRepo_GetInexistenteDevuelveNil(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	got, err := repo.GetByID(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	seed(t, repo, newProduct("A-1", "Tornillo", 0, 0))

	err := repo.Create(context.Background(), newProduct("A-1", "Otro", 0, 0))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductRepo_UpdateRenombrarASKUExistente(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	a := newProduct("A-1", "Tornillo", 0, 0)
	b := newProduct("B-1", "Tuerca", 0, 0)
	seed(t, repo, a, b)

	b.SKU = "A-1"
	err := repo.Update(context.Background(), b)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestProductRepo_UpdateNoEscribeQuantity(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	ctx := context.Background()
	p := newProduct("A-1", "Tornillo", 10, 0)
	seed(t, repo, p)

	stale, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateQuantity(ctx, p.ID, 3))

	stale.Name = "Tornillo 3/8"
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 3/8", got.Name)
	assert.Equal(t, int64(3), got.Quantity)
}

func TestProductRepo_UpdateInexistente(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	err := repo.Update(context.Background(), newProduct("X", "X", 0, 0))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductRepo_ListFiltrosYOrden(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	ctx := context.Background()
	a := newProduct("TOR-1", "Tornillo grande", 1, 5)
	b := newProduct("TUE-1", "Tuerca", 20, 5)
	c := newProduct("CLA-1", "Clavo", 3, 3)
	c.Category = "Carpintería"
	c.Supplier = "Maderas SA"
	seed(t, repo, a, b, c)

	all, err := repo.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"CLA-1", "TOR-1", "TUE-1"}, skus(all))

	search, err := repo.List(ctx, entity.ProductFilter{Search: "TORNI"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TOR-1"}, skus(search))

	bySKU, err := repo.List(ctx, entity.ProductFilter{Search: "tue-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TUE-1"}, skus(bySKU))

	cat, err := repo.List(ctx, entity.ProductFilter{Category: "Carpintería"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CLA-1"}, skus(cat))

	sup, err := repo.List(ctx, entity.ProductFilter{Supplier: "Acme", OrderBy: entity.OrderByQuantity, OrderDir: entity.OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"TUE-1", "TOR-1"}, skus(sup))

	low, err := repo.List(ctx, entity.ProductFilter{LowStockOnly: true, OrderBy: entity.OrderByQuantity})
	require.NoError(t, err)
	assert.Equal(t, []string{"TOR-1", "CLA-1"}, skus(low))
}

func TestProductRepo_ListBusquedaConComodinLiteral(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	seed(t, repo, newProduct("P-1", "Descuento 50%", 0, 0), newProduct("P-2", "Caja 500", 0, 0))

	got, err := repo.List(context.Background(), entity.ProductFilter{Search: "50%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P-1"}, skus(got))
}

func TestProductRepo_ListVacioNoEsNil(t *testing.T) {
	repo := sqlite.NewProductRepository(setupTestDB(t))
	got, err := repo.List(context.Background(), entity.ProductFilter{Search: "nada"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProductRepo_DeleteBorraMovimientos(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProductRepository(db)
	movRepo := sqlite.NewMovementRepository(db)
	ctx := context.Background()
	p := newProduct("A-1", "Tornillo", 5, 0)
	seed(t, repo, p)
	require.NoError(t, movRepo.Create(ctx, &entity.Movement{
		ID: uuid.New().String(), ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 5,
		OccurredAt: time.Now().UTC(), CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, repo.Delete(ctx, p.ID))

	movs, err := movRepo.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.True(t, errors.Is(repo.Delete(ctx, p.ID), domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepo y TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementRepo_OrdenMasRecientePrimero(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProductRepository(db)
	movRepo := sqlite.NewMovementRepository(db)
	ctx := context.Background()
	p := newProduct("A-1", "Tornillo", 0, 0)
	seed(t, repo, p)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, note := range []string{"primero", "segundo", ""} {
		require.NoError(t, movRepo.Create(ctx, &entity.Movement{
			ID: uuid.New().String(), ProductID: p.ID, Type: entity.MovementTypeEntry, Quantity: 1,
			OccurredAt: base.Add(time.Duration(i) * time.Hour), Note: note, CreatedAt: base,
		}))
	}

	movs, err := movRepo.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, "", movs[0].Note)
	assert.Equal(t, "segundo", movs[1].Note)
	assert.Equal(t, "primero", movs[2].Note)
	assert.True(t, movs[2].OccurredAt.Equal(base))
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProductRepository(db)
	ctx := context.Background()
	p := newProduct("A-1", "Tornillo", 5, 0)
	seed(t, repo, p)

	boom := errors.New("falla simulada")
	err := sqlite.NewTxRunner(db).Run(ctx, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
		require.NoError(t, pr.UpdateQuantity(ctx, p.ID, 99))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
}
