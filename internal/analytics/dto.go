package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input bounds the reporting window, inclusive on both ends. Zero dates
// default to the trailing thirty days.
type Input struct {
	StartDate time.Time
	EndDate   time.Time
	TopLimit  int
}

// ProductQuantity is one top-seller entry.
type ProductQuantity struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// WholesalerSales is the purchasing volume routed to one supplier.
type WholesalerSales struct {
	WholesalerID uuid.UUID       `json:"wholesaler_id"`
	Name         string          `json:"name"`
	TotalSales   decimal.Decimal `json:"total_sales"`
}

// DateCount is the number of order lists opened on one calendar date.
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ReportDTO bundles the five rollups for the window.
type ReportDTO struct {
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	TotalSales        decimal.Decimal   `json:"total_sales"`
	TopProducts       []ProductQuantity `json:"top_products"`
	SalesByWholesaler []WholesalerSales `json:"sales_by_wholesaler"`
	OrderFrequency    []DateCount       `json:"order_frequency"`
	AverageOrderValue decimal.Decimal   `json:"average_order_value"`
}
