package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// OrderList collects restocking items for one wholesaler and cadence.
// At most one pending list exists per (wholesaler_id, cadence); the
// partial unique index order_lists_pending_unique enforces it.
type OrderList struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Date          time.Time             `gorm:"column:date;type:date;not null"`
	WholesalerID  uuid.UUID             `gorm:"column:wholesaler_id;type:uuid;not null"`
	Wholesaler    *Wholesaler           `gorm:"foreignKey:WholesalerID"`
	Status        enums.OrderListStatus `gorm:"column:status;not null;default:pending"`
	Cadence       enums.Cadence         `gorm:"column:cadence;not null"`
	FinalizedDate *time.Time            `gorm:"column:finalized_date"`
	Items         []OrderListItem       `gorm:"foreignKey:OrderListID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
