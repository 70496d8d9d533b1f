package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD y listado de productos.
type ProductUseCase struct {
	txRunner repository.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	verr := &domain.ValidationError{}
	checkRequired(verr, "name", in.Name)
	checkRequired(verr, "sku", in.SKU)
	checkNonNegative(verr, "cost", in.Cost)
	checkNonNegative(verr, "price", in.Price)
	if verr.HasErrors() {
		return nil, verr
	}

	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        entity.NewID(),
		Name:      in.Name,
		SKU:       in.SKU,
		Category:  strings.TrimSpace(in.Category),
		Supplier:  strings.TrimSpace(in.Supplier),
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		Cost:      in.Cost,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update aplica una actualización parcial. Renombrar el SKU a uno existente devuelve domain.ErrDuplicate.
// La lectura y la escritura ocurren en una sola transacción con la fila bloqueada, y el saldo
// solo se escribe si el request trae quantity: un movimiento concurrente nunca se pierde.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		current, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := applyUpdate(ctx, products, current, in); err != nil {
			return err
		}
		current.UpdatedAt = time.Now().UTC()
		if err := products.Update(ctx, current); err != nil {
			return err
		}
		if in.Quantity != nil {
			if err := products.UpdateQuantity(ctx, current.ID, current.Quantity); err != nil {
				return err
			}
		}
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// applyUpdate copia en product los campos presentes en el request.
func applyUpdate(ctx context.Context, products repository.ProductRepository, product *entity.Product, in dto.UpdateProductRequest) error {
	verr := &domain.ValidationError{}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
		checkRequired(verr, "name", product.Name)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		checkRequired(verr, "sku", sku)
		if sku != "" && sku != product.SKU {
			other, err := products.GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Supplier != nil {
		product.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Cost != nil {
		checkNonNegative(verr, "cost", *in.Cost)
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		checkNonNegative(verr, "price", *in.Price)
		product.Price = *in.Price
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// List lista productos aplicando búsqueda, filtros y orden (por defecto name asc).
func (uc *ProductUseCase) List(ctx context.Context, q dto.ListQuery) ([]dto.ProductResponse, error) {
	filter, err := q.ToFilter(entity.OrderByName)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list), nil
}

// Delete elimina un producto (y su historial de movimientos) o devuelve domain.ErrNotFound.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !entity.ValidID(id) {
		return domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func checkRequired(verr *domain.ValidationError, field, value string) {
	if value == "" {
		verr.Add(field, "es requerido")
	}
}

func checkNonNegative(verr *domain.ValidationError, field string, value decimal.Decimal) {
	if value.IsNegative() {
		verr.Add(field, "debe ser mayor o igual a 0")
	}
}
