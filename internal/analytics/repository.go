package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

// Repository loads the order list rows the rollups are computed from.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListOrderListsInRange returns every list dated inside [start, end] with
// wholesaler, items and products preloaded.
func (r *Repository) ListOrderListsInRange(ctx context.Context, start, end time.Time) ([]models.OrderList, error) {
	var lists []models.OrderList
	err := r.db.WithContext(ctx).
		Preload("Wholesaler").
		Preload("Items").
		Preload("Items.Product").
		Where("date >= ? AND date <= ?", start, end).
		Order("date asc").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}
