package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite (gorm). Usable con db o tx.
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(toProductModel(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.first(ctx, "sku = ?", sku)
}

// GetForUpdate equivale a GetByID: SQLite ya serializa la transacción de escritura.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProductRepo) first(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza los campos descriptivos del producto. El saldo (quantity) no se toca:
// solo cambia a través de UpdateQuantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":       p.Name,
		"sku":        p.SKU,
		"category":   p.Category,
		"supplier":   p.Supplier,
		"min_stock":  p.MinStock,
		"cost":       p.Cost,
		"price":      p.Price,
		"updated_at": p.UpdatedAt.UTC(),
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity actualiza solo el saldo.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(map[string]any{
		"quantity":   quantity,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("update product quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con búsqueda, filtros y orden (campos de la lista blanca de entity).
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	q := r.db.WithContext(ctx).Model(&productModel{})
	if f.Search != "" {
		pattern := f.SearchPattern()
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Supplier != "" {
		q = q.Where("supplier = ?", f.Supplier)
	}
	if f.LowStockOnly {
		q = q.Where("quantity <= min_stock")
	}

	col := entity.OrderByName
	if entity.ValidOrderBy(f.OrderBy) {
		col = f.OrderBy
	}
	dir := "ASC"
	if f.OrderDir == entity.OrderDesc {
		dir = "DESC"
	}

	var models []productModel
	if err := q.Order(col + " " + dir).Order("sku ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}

// Delete elimina el producto y sus movimientos en una transacción.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&movementModel{}).Error; err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&productModel{})
		if res.Error != nil {
			return fmt.Errorf("delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
