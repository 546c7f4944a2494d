package models

import (
	"time"

	"github.com/google/uuid"
)

// Wholesaler is a supplier the shop restocks from.
type Wholesaler struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	IsDaily       bool      `gorm:"column:is_daily;not null;default:false"`
	ContactPerson *string   `gorm:"column:contact_person"`
	Email         *string   `gorm:"column:email"`
	Phone         *string   `gorm:"column:phone"`
	Products      []Product `gorm:"foreignKey:WholesalerID"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
