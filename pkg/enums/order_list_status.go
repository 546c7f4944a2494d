package enums

import "fmt"

// OrderListStatus describes the allowed values for the `status` column in order_lists.
type OrderListStatus string

const (
	OrderListStatusPending   OrderListStatus = "pending"
	OrderListStatusFinalized OrderListStatus = "finalized"
)

var validOrderListStatuses = []OrderListStatus{
	OrderListStatusPending,
	OrderListStatusFinalized,
}

// IsValid reports whether the value matches the canonical order list status enum.
func (o OrderListStatus) IsValid() bool {
	for _, candidate := range validOrderListStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderListStatus converts the raw string to OrderListStatus.
func ParseOrderListStatus(value string) (OrderListStatus, error) {
	for _, candidate := range validOrderListStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order list status %q", value)
}
