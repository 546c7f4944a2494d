package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderListItem is one appended line on an order list. Repeated adds of
// the same product stay separate rows, quantities are never merged.
type OrderListItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderListID uuid.UUID `gorm:"column:order_list_id;type:uuid;not null"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Product     *Product  `gorm:"foreignKey:ProductID"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Comment     *string   `gorm:"column:comment"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
