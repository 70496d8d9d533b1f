package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

type productModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:200;not null"`
	SKU       string          `gorm:"column:sku;size:100;not null;uniqueIndex"`
	Category  string          `gorm:"size:100;not null;default:'';index"`
	Supplier  string          `gorm:"size:100;not null;default:'';index"`
	Quantity  int64           `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0"`
	MinStock  int64           `gorm:"not null;default:0;check:chk_products_min_stock,min_stock >= 0"`
	Cost      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Price     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (productModel) TableName() string { return "products" }

type movementModel struct {
	ID         string       `gorm:"primaryKey;size:36"`
	ProductID  string       `gorm:"size:36;not null;index:idx_movements_product,priority:1"`
	Product    productModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Type       string       `gorm:"size:10;not null"`
	Quantity   int64        `gorm:"not null;check:chk_movements_quantity,quantity >= 1"`
	OccurredAt time.Time    `gorm:"not null;index:idx_movements_product,priority:2"`
	Note       *string
	CreatedAt  time.Time
}

func (movementModel) TableName() string { return "movements" }

func toProductModel(p *entity.Product) *productModel {
	return &productModel{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Supplier:  p.Supplier,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Cost:      p.Cost,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (m *productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		SKU:       m.SKU,
		Category:  m.Category,
		Supplier:  m.Supplier,
		Quantity:  m.Quantity,
		MinStock:  m.MinStock,
		Cost:      m.Cost,
		Price:     m.Price,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toMovementModel(m *entity.Movement) *movementModel {
	var note *string
	if m.Note != "" {
		n := m.Note
		note = &n
	}
	return &movementModel{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt.UTC(),
		Note:       note,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func (m *movementModel) toEntity() *entity.Movement {
	out := &entity.Movement{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt.UTC(),
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.Note != nil {
		out.Note = *m.Note
	}
	return out
}
