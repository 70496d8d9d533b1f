package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/catalog"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAdminUser     = "admin"
	testAdminPassword = "s3creta"
	testJWTSecret     = "test-secret-key-for-unit-tests"
)

type fakePDF struct{}

func (fakePDF) GenerateLowStockPDF(_ context.Context, _ []*entity.Product, _ time.Time) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// buildTestApp construye la aplicación completa sobre SQLite en memoria.
// withAuth=false deja la API abierta (auth deshabilitada).
func buildTestApp(t *testing.T, withAuth bool) *fiber.App {
	t.Helper()
	db, err := sqlite.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	productRepo := sqlite.NewProductRepository(db)
	movRepo := sqlite.NewMovementRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	authCfg := auth.Config{AdminUser: testAdminUser, ExpMinutes: 60, Issuer: "estoque-test"}
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
		require.NoError(t, err)
		authCfg.AdminPasswordHash = string(hash)
		authCfg.Secret = testJWTSecret
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(txRunner, productRepo),
		MovementUC:     inventory.NewMovementUseCase(txRunner, productRepo, movRepo),
		LowStockUC:     inventory.NewLowStockUseCase(productRepo, fakePDF{}),
		CSVUC:          catalog.NewCSVUseCase(txRunner, productRepo),
		AuthUC:         auth.NewAuthUseCase(authCfg),
		Health:         apphttp.NewHealthHandler("estoque-test", "sqlite", nil),
		MaxUploadBytes: 1 << 20,
	})
	return app
}

// doJSON lanza una petición con body JSON (body nil = sin cuerpo).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doUpload envía un CSV como multipart (campo "file").
func doUpload(t *testing.T, app *fiber.App, path, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "productos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, sku string, qty, minStock int64) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Producto " + sku, "sku": sku, "category": "Ferretería", "supplier": "Acme",
		"quantity": qty, "min_stock": minStock, "cost": "1.50", "price": 3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[map[string]any](t, resp)
}
