package orderlists

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// Repository wires together order list persistence helpers.
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

// FindProductWithWholesaler loads the product and the supplier it belongs to.
func (r *Repository) FindProductWithWholesaler(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Wholesaler").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPendingList returns the open list for the wholesaler and cadence.
func (r *Repository) FindPendingList(ctx context.Context, wholesalerID uuid.UUID, cadence enums.Cadence) (*models.OrderList, error) {
	var list models.OrderList
	err := r.db.WithContext(ctx).
		Where("wholesaler_id = ? AND cadence = ? AND status = ?", wholesalerID, cadence, enums.OrderListStatusPending).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateList inserts a new order list.
func (r *Repository) CreateList(ctx context.Context, list *models.OrderList) (*models.OrderList, error) {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreateListGuarded inserts a new order list inside a nested transaction.
// When the repository is already bound to a transaction gorm issues a
// savepoint, so a unique violation rolls back the insert alone and the
// enclosing transaction stays usable for a retry lookup.
func (r *Repository) CreateListGuarded(ctx context.Context, list *models.OrderList) (*models.OrderList, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateItem appends a line to a list.
func (r *Repository) CreateItem(ctx context.Context, item *models.OrderListItem) (*models.OrderListItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads a single line.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.OrderListItem, error) {
	var item models.OrderListItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists all fields of the line.
func (r *Repository) SaveItem(ctx context.Context, item *models.OrderListItem) (*models.OrderListItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the line.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderListItem{}, "id = ?", id).Error
}

// orderItemsByAge keeps preloaded lines in the order they were appended.
func orderItemsByAge(db *gorm.DB) *gorm.DB {
	return db.Order("order_list_items.created_at asc")
}

// FindListByID loads the list with wholesaler and items preloaded.
func (r *Repository) FindListByID(ctx context.Context, id uuid.UUID) (*models.OrderList, error) {
	var list models.OrderList
	err := r.db.WithContext(ctx).
		Preload("Wholesaler").
		Preload("Items", orderItemsByAge).
		Preload("Items.Product").
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListPendingByCadence returns the open lists for a cadence, one per wholesaler.
func (r *Repository) ListPendingByCadence(ctx context.Context, cadence enums.Cadence) ([]models.OrderList, error) {
	var lists []models.OrderList
	err := r.db.WithContext(ctx).
		Preload("Wholesaler").
		Preload("Items", orderItemsByAge).
		Preload("Items.Product").
		Where("cadence = ? AND status = ?", cadence, enums.OrderListStatusPending).
		Order("date asc").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// FinalizePendingByCadence stamps every open list of the cadence. Selecting
// only pending rows keeps re-runs idempotent.
func (r *Repository) FinalizePendingByCadence(ctx context.Context, cadence enums.Cadence, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.OrderList{}).
		Where("cadence = ? AND status = ?", cadence, enums.OrderListStatusPending).
		Updates(map[string]any{
			"status":         enums.OrderListStatusFinalized,
			"finalized_date": now,
		})
	return res.RowsAffected, res.Error
}

// FinalizeListByID stamps one open list.
func (r *Repository) FinalizeListByID(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.OrderList{}).
		Where("id = ? AND status = ?", id, enums.OrderListStatusPending).
		Updates(map[string]any{
			"status":         enums.OrderListStatusFinalized,
			"finalized_date": now,
		})
	return res.RowsAffected, res.Error
}

// ListHistory returns one page of lists matching the filters plus the total.
func (r *Repository) ListHistory(ctx context.Context, input ListInput) ([]models.OrderList, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderList{})

	if input.Cadence != nil {
		query = query.Where("cadence = ?", *input.Cadence)
	}
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.StartDate != nil {
		query = query.Where("date >= ?", *input.StartDate)
	}
	if input.EndDate != nil {
		query = query.Where("date <= ?", *input.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "date"
	switch input.SortBy {
	case "date", "created_at", "finalized_date":
		sortBy = input.SortBy
	}
	direction := "desc"
	if input.SortOrder == "asc" {
		direction = "asc"
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var lists []models.OrderList
	err := query.
		Preload("Wholesaler").
		Preload("Items").
		Preload("Items.Product").
		Order(sortBy + " " + direction).
		Limit(limit).
		Offset(input.Offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// DeleteListWithItems removes the list and its lines, lines first.
func (r *Repository) DeleteListWithItems(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&models.OrderListItem{}, "order_list_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&models.OrderList{}, "id = ?", id).Error
}
