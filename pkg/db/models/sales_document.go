package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// SalesDocument is reconciliation evidence stored in the object store.
// StorageKey is the object name; StorageURL the public media link.
type SalesDocument struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SalesID      uuid.UUID          `gorm:"column:sales_id;type:uuid;not null"`
	DocumentType enums.DocumentType `gorm:"column:document_type;not null"`
	Filename     string             `gorm:"column:filename;not null"`
	StorageKey   string             `gorm:"column:storage_key;not null"`
	StorageURL   string             `gorm:"column:storage_url;not null"`
	UploadTime   time.Time          `gorm:"column:upload_time;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
