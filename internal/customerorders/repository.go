package customerorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

// Repository wires together customer order persistence helpers.
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

// CreateOrder inserts a new order row.
func (r *Repository) CreateOrder(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// orderLinesByAge keeps preloaded lines in the order they were added.
func orderLinesByAge(db *gorm.DB) *gorm.DB {
	return db.Order("customer_order_items.created_at asc")
}

// FindOrderByID loads the order with its lines and product snapshots.
func (r *Repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	var order models.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Items", orderLinesByAge).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SaveOrder persists header changes on an existing order.
func (r *Repository) SaveOrder(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns one page of orders matching the filters, newest first.
func (r *Repository) ListOrders(ctx context.Context, input ListInput) ([]models.CustomerOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomerOrder{})

	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.StartDate != nil {
		query = query.Where("order_date >= ?", *input.StartDate)
	}
	if input.EndDate != nil {
		query = query.Where("order_date <= ?", *input.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var orders []models.CustomerOrder
	err := query.
		Preload("Items", orderLinesByAge).
		Preload("Items.Product").
		Order("order_date desc").
		Limit(limit).
		Offset(input.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// DeleteOrderWithItems removes the order and its lines, lines first.
func (r *Repository) DeleteOrderWithItems(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&models.CustomerOrderItem{}, "customer_order_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&models.CustomerOrder{}, "id = ?", id).Error
}

// CreateItem inserts a new order line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CustomerOrderItem) (*models.CustomerOrderItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads a single order line.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.CustomerOrderItem, error) {
	var item models.CustomerOrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists changes on an existing order line.
func (r *Repository) SaveItem(ctx context.Context, item *models.CustomerOrderItem) (*models.CustomerOrderItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an order line by id.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CustomerOrderItem{}, "id = ?", id).Error
}

// ListItemsByOrder returns the lines of an order for total recomputation.
func (r *Repository) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CustomerOrderItem, error) {
	var items []models.CustomerOrderItem
	err := r.db.WithContext(ctx).
		Where("customer_order_id = ?", orderID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindFirstProductByName resolves the first catalog product whose name
// contains the query, matched case-insensitively.
func (r *Repository) FindFirstProductByName(ctx context.Context, query string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, db.LikePattern(query)).
		Order("name asc").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProductsByName returns up to limit catalog products whose name
// contains the query, matched case-insensitively.
func (r *Repository) SearchProductsByName(ctx context.Context, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, db.LikePattern(query)).
		Order("name asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
