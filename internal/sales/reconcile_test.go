package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name          string
		in            ChannelFigures
		wantFront     string
		wantBack      string
		wantExpected  string
		wantActual    string
		wantOverall   string
		wantStatus    enums.SalesStatus
		wantSignifies bool
	}{
		{
			name: "shortfall exactly at threshold stays balanced",
			in: ChannelFigures{
				FrontRegisterAmount: dec("500"),
				BackRegisterAmount:  dec("300"),
				CreditCardAmount:    dec("1200"),
				OTC1Amount:          dec("50"),
				OTC2Amount:          dec("20"),
				FrontRegisterCash:   dec("495"),
				BackRegisterCash:    dec("300"),
				CreditCardTotal:     dec("1200"),
				OTC1Total:           dec("50"),
				OTC2Total:           dec("15"),
			},
			wantFront:    "-5",
			wantBack:     "0",
			wantExpected: "2070",
			wantActual:   "2060",
			wantOverall:  "-10",
			wantStatus:   enums.SalesStatusBalanced,
		},
		{
			name: "missing otc2 cash tips into discrepancy",
			in: ChannelFigures{
				FrontRegisterAmount: dec("500"),
				BackRegisterAmount:  dec("300"),
				CreditCardAmount:    dec("1200"),
				OTC1Amount:          dec("50"),
				OTC2Amount:          dec("20"),
				FrontRegisterCash:   dec("495"),
				BackRegisterCash:    dec("300"),
				CreditCardTotal:     dec("1200"),
				OTC1Total:           dec("50"),
				OTC2Total:           dec("0"),
			},
			wantFront:     "-5",
			wantBack:      "0",
			wantExpected:  "2070",
			wantActual:    "2045",
			wantOverall:   "-25",
			wantStatus:    enums.SalesStatusDiscrepancy,
			wantSignifies: true,
		},
		{
			name: "surplus just over threshold",
			in: ChannelFigures{
				FrontRegisterAmount: dec("100"),
				FrontRegisterCash:   dec("110.01"),
			},
			wantFront:     "10.01",
			wantBack:      "0",
			wantExpected:  "100",
			wantActual:    "110.01",
			wantOverall:   "10.01",
			wantStatus:    enums.SalesStatusDiscrepancy,
			wantSignifies: true,
		},
		{
			name:         "all zero",
			in:           ChannelFigures{},
			wantFront:    "0",
			wantBack:     "0",
			wantExpected: "0",
			wantActual:   "0",
			wantOverall:  "0",
			wantStatus:   enums.SalesStatusBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.in)

			assert.True(t, got.FrontDiscrepancy.Equal(dec(tt.wantFront)),
				"front discrepancy: want %s, got %s", tt.wantFront, got.FrontDiscrepancy)
			assert.True(t, got.BackDiscrepancy.Equal(dec(tt.wantBack)),
				"back discrepancy: want %s, got %s", tt.wantBack, got.BackDiscrepancy)
			assert.True(t, got.TotalExpected.Equal(dec(tt.wantExpected)),
				"total expected: want %s, got %s", tt.wantExpected, got.TotalExpected)
			assert.True(t, got.TotalActual.Equal(dec(tt.wantActual)),
				"total actual: want %s, got %s", tt.wantActual, got.TotalActual)
			assert.True(t, got.OverallDiscrepancy.Equal(dec(tt.wantOverall)),
				"overall discrepancy: want %s, got %s", tt.wantOverall, got.OverallDiscrepancy)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantSignifies, got.Significant())
		})
	}
}
