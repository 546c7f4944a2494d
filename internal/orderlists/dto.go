package orderlists

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// OrderListDTO is the restocking list payload returned to clients.
type OrderListDTO struct {
	ID             uuid.UUID             `json:"id"`
	Date           time.Time             `json:"date"`
	WholesalerID   uuid.UUID             `json:"wholesaler_id"`
	WholesalerName string                `json:"wholesaler_name,omitempty"`
	Status         enums.OrderListStatus `json:"status"`
	Cadence        enums.Cadence         `json:"cadence"`
	FinalizedDate  *time.Time            `json:"finalized_date,omitempty"`
	Items          []OrderListItemDTO    `json:"items"`
	TotalValue     decimal.Decimal       `json:"total_value"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// OrderListItemDTO is one appended line with its product snapshot.
type OrderListItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Comment     *string         `json:"comment,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AddToOrderInput holds the validated payload for appending a restocking line.
type AddToOrderInput struct {
	ProductID       uuid.UUID
	Quantity        int
	CadenceOverride *enums.Cadence
	Comment         *string
}

// ListInput carries history filters, sorting and pagination.
type ListInput struct {
	Cadence   *enums.Cadence
	Status    *enums.OrderListStatus
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// ListResult pairs one page of lists with the unfiltered total.
type ListResult struct {
	Lists []OrderListDTO
	Total int64
}

// NewOrderListDTO builds a DTO from the persisted model, computing the
// running total from the preloaded items.
func NewOrderListDTO(list *models.OrderList) *OrderListDTO {
	dto := &OrderListDTO{
		ID:            list.ID,
		Date:          list.Date,
		WholesalerID:  list.WholesalerID,
		Status:        list.Status,
		Cadence:       list.Cadence,
		FinalizedDate: list.FinalizedDate,
		Items:         make([]OrderListItemDTO, 0, len(list.Items)),
		TotalValue:    decimal.Zero,
		CreatedAt:     list.CreatedAt,
		UpdatedAt:     list.UpdatedAt,
	}
	if list.Wholesaler != nil {
		dto.WholesalerName = list.Wholesaler.Name
	}
	for i := range list.Items {
		item := newOrderListItemDTO(&list.Items[i])
		dto.TotalValue = dto.TotalValue.Add(item.LineTotal)
		dto.Items = append(dto.Items, item)
	}
	return dto
}

func newOrderListItemDTO(item *models.OrderListItem) OrderListItemDTO {
	dto := OrderListItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Comment:   item.Comment,
		CreatedAt: item.CreatedAt,
	}
	if item.Product != nil {
		dto.ProductCode = item.Product.Code
		dto.ProductName = item.Product.Name
		dto.UnitPrice = item.Product.Price
		dto.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return dto
}

// NewOrderListDTOs maps a slice of models.
func NewOrderListDTOs(lists []models.OrderList) []OrderListDTO {
	out := make([]OrderListDTO, 0, len(lists))
	for i := range lists {
		out = append(out, *NewOrderListDTO(&lists[i]))
	}
	return out
}
