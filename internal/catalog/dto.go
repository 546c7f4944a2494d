package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

// WholesalerDTO is the supplier payload returned to clients.
type WholesalerDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	IsDaily       bool      `json:"is_daily"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductDTO is the catalog entry payload returned to clients.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Size             *string         `json:"size,omitempty"`
	Price            decimal.Decimal `json:"price"`
	WholesalerID     uuid.UUID       `json:"wholesaler_id"`
	WholesalerName   string          `json:"wholesaler_name,omitempty"`
	AvailableInStore bool            `json:"available_in_store"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreateWholesalerInput holds the validated payload to create a wholesaler.
type CreateWholesalerInput struct {
	Name          string
	IsDaily       bool
	ContactPerson *string
	Email         *string
	Phone         *string
}

// UpdateWholesalerInput holds optional mutation values for a wholesaler.
type UpdateWholesalerInput struct {
	Name          *string
	IsDaily       *bool
	ContactPerson *string
	Email         *string
	Phone         *string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Code             string
	Name             string
	Size             *string
	Price            decimal.Decimal
	WholesalerID     uuid.UUID
	AvailableInStore bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Code             *string
	Name             *string
	Size             *string
	Price            *decimal.Decimal
	WholesalerID     *uuid.UUID
	AvailableInStore *bool
}

// ImportResult summarizes a completed spreadsheet import.
type ImportResult struct {
	Imported int `json:"imported"`
}

// NewWholesalerDTO builds a DTO from the persisted model.
func NewWholesalerDTO(w *models.Wholesaler) *WholesalerDTO {
	return &WholesalerDTO{
		ID:            w.ID,
		Name:          w.Name,
		IsDaily:       w.IsDaily,
		ContactPerson: w.ContactPerson,
		Email:         w.Email,
		Phone:         w.Phone,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(p *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Size:             p.Size,
		Price:            p.Price,
		WholesalerID:     p.WholesalerID,
		AvailableInStore: p.AvailableInStore,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Wholesaler != nil {
		dto.WholesalerName = p.Wholesaler.Name
	}
	return dto
}

// NewProductDTOs maps a slice of models.
func NewProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *NewProductDTO(&products[i]))
	}
	return out
}

// NewWholesalerDTOs maps a slice of models.
func NewWholesalerDTOs(wholesalers []models.Wholesaler) []WholesalerDTO {
	out := make([]WholesalerDTO, 0, len(wholesalers))
	for i := range wholesalers {
		out = append(out, *NewWholesalerDTO(&wholesalers[i]))
	}
	return out
}
