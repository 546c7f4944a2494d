package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// CustomerOrderItem is one line on a customer order. ProductID is null for
// off-catalog items, which carry their own name and price instead.
type CustomerOrderItem struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerOrderID   uuid.UUID             `gorm:"column:customer_order_id;type:uuid;not null"`
	ProductID         *uuid.UUID            `gorm:"column:product_id;type:uuid"`
	Product           *Product              `gorm:"foreignKey:ProductID"`
	CustomProductName *string               `gorm:"column:custom_product_name"`
	Quantity          int                   `gorm:"column:quantity;not null"`
	Price             decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Status            enums.OrderItemStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
