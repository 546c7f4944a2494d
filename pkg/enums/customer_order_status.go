package enums

import "fmt"

// CustomerOrderStatus describes the allowed values for the `status` column in customer_orders.
type CustomerOrderStatus string

const (
	CustomerOrderStatusPending  CustomerOrderStatus = "pending"
	CustomerOrderStatusComplete CustomerOrderStatus = "complete"
)

var validCustomerOrderStatuses = []CustomerOrderStatus{
	CustomerOrderStatusPending,
	CustomerOrderStatusComplete,
}

// IsValid reports whether the value matches the canonical customer order status enum.
func (c CustomerOrderStatus) IsValid() bool {
	for _, candidate := range validCustomerOrderStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerOrderStatus converts the raw string to CustomerOrderStatus.
func ParseCustomerOrderStatus(value string) (CustomerOrderStatus, error) {
	for _, candidate := range validCustomerOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer order status %q", value)
}
