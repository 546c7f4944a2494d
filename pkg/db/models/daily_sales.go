package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// DailySales is one end-of-day register reconciliation. The *_amount
// columns hold expected figures per channel, the *_cash / *_total
// columns the counted actuals. Derived columns are written once at
// creation and never recomputed.
type DailySales struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Date       time.Time `gorm:"column:date;type:date;not null"`
	ReportTime time.Time `gorm:"column:report_time;not null"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null"`
	Employee   *User     `gorm:"foreignKey:EmployeeID"`

	FrontRegisterAmount decimal.Decimal `gorm:"column:front_register_amount;type:numeric(12,2);not null"`
	BackRegisterAmount  decimal.Decimal `gorm:"column:back_register_amount;type:numeric(12,2);not null"`
	CreditCardAmount    decimal.Decimal `gorm:"column:credit_card_amount;type:numeric(12,2);not null"`
	OTC1Amount          decimal.Decimal `gorm:"column:otc1_amount;type:numeric(12,2);not null"`
	OTC2Amount          decimal.Decimal `gorm:"column:otc2_amount;type:numeric(12,2);not null"`

	FrontRegisterCash decimal.Decimal `gorm:"column:front_register_cash;type:numeric(12,2);not null"`
	BackRegisterCash  decimal.Decimal `gorm:"column:back_register_cash;type:numeric(12,2);not null"`
	CreditCardTotal   decimal.Decimal `gorm:"column:credit_card_total;type:numeric(12,2);not null"`
	OTC1Total         decimal.Decimal `gorm:"column:otc1_total;type:numeric(12,2);not null"`
	OTC2Total         decimal.Decimal `gorm:"column:otc2_total;type:numeric(12,2);not null"`

	FrontDiscrepancy   decimal.Decimal `gorm:"column:front_discrepancy;type:numeric(12,2);not null"`
	BackDiscrepancy    decimal.Decimal `gorm:"column:back_discrepancy;type:numeric(12,2);not null"`
	TotalExpected      decimal.Decimal `gorm:"column:total_expected;type:numeric(12,2);not null"`
	TotalActual        decimal.Decimal `gorm:"column:total_actual;type:numeric(12,2);not null"`
	OverallDiscrepancy decimal.Decimal `gorm:"column:overall_discrepancy;type:numeric(12,2);not null"`

	Notes     *string           `gorm:"column:notes"`
	Status    enums.SalesStatus `gorm:"column:status;not null"`
	Documents []SalesDocument   `gorm:"foreignKey:SalesID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
