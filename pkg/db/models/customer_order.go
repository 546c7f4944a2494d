package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// CustomerOrder is a special order placed at the counter. TotalAmount is
// recomputed from the item rows on every item mutation.
type CustomerOrder struct {
	ID              uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName    string                    `gorm:"column:customer_name;not null"`
	CustomerContact *string                   `gorm:"column:customer_contact"`
	OrderDate       time.Time                 `gorm:"column:order_date;not null"`
	Status          enums.CustomerOrderStatus `gorm:"column:status;not null;default:pending"`
	IsPaid          bool                      `gorm:"column:is_paid;not null;default:false"`
	TotalAmount     decimal.Decimal           `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	Items           []CustomerOrderItem       `gorm:"foreignKey:CustomerOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
