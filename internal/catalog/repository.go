package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateWholesaler inserts the wholesaler.
func (r *Repository) CreateWholesaler(ctx context.Context, w *models.Wholesaler) (*models.Wholesaler, error) {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// FindWholesalerByID loads the wholesaler without associations.
func (r *Repository) FindWholesalerByID(ctx context.Context, id uuid.UUID) (*models.Wholesaler, error) {
	var w models.Wholesaler
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWholesalers returns all wholesalers ordered by name.
func (r *Repository) ListWholesalers(ctx context.Context) ([]models.Wholesaler, error) {
	var out []models.Wholesaler
	if err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SaveWholesaler persists all fields of the wholesaler.
func (r *Repository) SaveWholesaler(ctx context.Context, w *models.Wholesaler) (*models.Wholesaler, error) {
	if err := r.db.WithContext(ctx).Save(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWholesaler removes the wholesaler row.
func (r *Repository) DeleteWholesaler(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Wholesaler{}, "id = ?", id).Error
}

// CountProductsByWholesaler reports how many products reference the wholesaler.
func (r *Repository) CountProductsByWholesaler(ctx context.Context, wholesalerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("wholesaler_id = ?", wholesalerID).
		Count(&count).Error
	return count, err
}

// CreateProduct inserts the product.
func (r *Repository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProducts inserts a batch of products in one statement.
func (r *Repository) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

// FindProductByID loads the product with its wholesaler.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Wholesaler").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products with wholesalers preloaded, ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).Preload("Wholesaler").Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchProductsByName matches a case-insensitive substring of the name.
func (r *Repository) SearchProductsByName(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []models.Product
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, db.LikePattern(query)).
		Order("name asc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveProduct persists all fields of the product.
func (r *Repository) SaveProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes the product row.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// DeleteProducts removes all products in the id set and reports how many went away.
func (r *Repository) DeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}

// DeleteOrderListItemsByProducts clears restocking lines that reference the products.
// Product deletion runs this first so the FK never blocks it.
func (r *Repository) DeleteOrderListItemsByProducts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.OrderListItem{}, "product_id IN ?", ids).Error
}
