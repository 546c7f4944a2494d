package customerorders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// CustomerOrderDTO is the counter-order payload returned to clients.
type CustomerOrderDTO struct {
	ID              uuid.UUID                 `json:"id"`
	CustomerName    string                    `json:"customer_name"`
	CustomerContact *string                   `json:"customer_contact,omitempty"`
	OrderDate       time.Time                 `json:"order_date"`
	Status          enums.CustomerOrderStatus `json:"status"`
	IsPaid          bool                      `json:"is_paid"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	Items           []CustomerOrderItemDTO    `json:"items"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// CustomerOrderItemDTO is one order line. ProductID is nil for off-catalog
// items, whose name comes from the free-text field instead.
type CustomerOrderItemDTO struct {
	ID          uuid.UUID             `json:"id"`
	ProductID   *uuid.UUID            `json:"product_id,omitempty"`
	ProductName string                `json:"product_name"`
	Quantity    int                   `json:"quantity"`
	Price       decimal.Decimal       `json:"price"`
	LineTotal   decimal.Decimal       `json:"line_total"`
	Status      enums.OrderItemStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ProductSuggestionDTO is a slim catalog hit for the order entry typeahead.
type ProductSuggestionDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CreateOrderInput holds the validated payload for opening an order.
type CreateOrderInput struct {
	CustomerName    string
	CustomerContact *string
	OrderDate       *time.Time
	IsPaid          bool
	Status          *enums.CustomerOrderStatus
}

// UpdateOrderInput carries partial order header changes.
type UpdateOrderInput struct {
	CustomerName    *string
	CustomerContact *string
	IsPaid          *bool
	Status          *enums.CustomerOrderStatus
}

// AddItemInput adds a line by catalog lookup or, when CustomName is set,
// as an off-catalog item with its own price.
type AddItemInput struct {
	ProductNameQuery *string
	CustomName       *string
	Quantity         int
	Price            *decimal.Decimal
	Status           *enums.OrderItemStatus
}

// UpdateItemInput carries partial line changes.
type UpdateItemInput struct {
	Quantity *int
	Price    *decimal.Decimal
	Status   *enums.OrderItemStatus
}

// ListInput carries ledger filters and pagination.
type ListInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *enums.CustomerOrderStatus
	Limit     int
	Offset    int
}

// ListResult pairs one page of orders with the unfiltered total.
type ListResult struct {
	Orders []CustomerOrderDTO
	Total  int64
}

// NewCustomerOrderDTO builds a DTO from the persisted model.
func NewCustomerOrderDTO(order *models.CustomerOrder) *CustomerOrderDTO {
	dto := &CustomerOrderDTO{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerContact: order.CustomerContact,
		OrderDate:       order.OrderDate,
		Status:          order.Status,
		IsPaid:          order.IsPaid,
		TotalAmount:     order.TotalAmount,
		Items:           make([]CustomerOrderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for i := range order.Items {
		dto.Items = append(dto.Items, newCustomerOrderItemDTO(&order.Items[i]))
	}
	return dto
}

func newCustomerOrderItemDTO(item *models.CustomerOrderItem) CustomerOrderItemDTO {
	dto := CustomerOrderItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
	}
	switch {
	case item.Product != nil:
		dto.ProductName = item.Product.Name
	case item.CustomProductName != nil:
		dto.ProductName = *item.CustomProductName
	}
	return dto
}

// NewCustomerOrderDTOs maps a slice of models.
func NewCustomerOrderDTOs(orders []models.CustomerOrder) []CustomerOrderDTO {
	out := make([]CustomerOrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *NewCustomerOrderDTO(&orders[i]))
	}
	return out
}

// NewProductSuggestionDTOs maps catalog hits for the typeahead.
func NewProductSuggestionDTOs(products []models.Product) []ProductSuggestionDTO {
	out := make([]ProductSuggestionDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSuggestionDTO{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out
}
