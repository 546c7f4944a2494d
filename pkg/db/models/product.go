package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry tied to the wholesaler that supplies it.
// Code is the external product code printed on the wholesaler's price list.
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string          `gorm:"column:code;not null;uniqueIndex"`
	Name             string          `gorm:"column:name;not null"`
	Size             *string         `gorm:"column:size"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	WholesalerID     uuid.UUID       `gorm:"column:wholesaler_id;type:uuid;not null"`
	Wholesaler       *Wholesaler     `gorm:"foreignKey:WholesalerID"`
	AvailableInStore bool            `gorm:"column:available_in_store;not null;default:true"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
