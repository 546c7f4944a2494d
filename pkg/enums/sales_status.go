package enums

import "fmt"

// SalesStatus is the reconciliation verdict stored on a daily sales record.
type SalesStatus string

const (
	SalesStatusBalanced    SalesStatus = "Balanced"
	SalesStatusDiscrepancy SalesStatus = "Discrepancy"
)

var validSalesStatuses = []SalesStatus{
	SalesStatusBalanced,
	SalesStatusDiscrepancy,
}

// String implements fmt.Stringer.
func (s SalesStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical sales status enum.
func (s SalesStatus) IsValid() bool {
	for _, candidate := range validSalesStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSalesStatus converts the raw string to SalesStatus.
func ParseSalesStatus(value string) (SalesStatus, error) {
	for _, candidate := range validSalesStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales status %q", value)
}
