package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

const defaultTopLimit = 5
const defaultWindowDays = 30

// Service exposes the purchasing rollups.
type Service interface {
	Report(ctx context.Context, input Input) (*ReportDTO, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs an analytics service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Report computes the five rollups over one pass of the window's lists.
// Nothing is cached; every call recomputes from the rows.
func (s *service) Report(ctx context.Context, input Input) (*ReportDTO, error) {
	end := input.EndDate
	if end.IsZero() {
		end = s.now().Truncate(24 * time.Hour)
	}
	start := input.StartDate
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultWindowDays)
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date")
	}
	topLimit := input.TopLimit
	if topLimit <= 0 {
		topLimit = defaultTopLimit
	}

	lists, err := s.repo.ListOrderListsInRange(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order lists for report")
	}

	report := &ReportDTO{
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
		TotalSales:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	type productAgg struct {
		name     string
		quantity int64
	}
	type wholesalerAgg struct {
		name  string
		total decimal.Decimal
	}

	products := map[uuid.UUID]*productAgg{}
	wholesalers := map[uuid.UUID]*wholesalerAgg{}
	frequency := map[string]int64{}

	listsWithValue := 0
	sumOfListValues := decimal.Zero

	for i := range lists {
		list := &lists[i]
		frequency[list.Date.Format("2006-01-02")]++

		listValue := decimal.Zero
		for j := range list.Items {
			item := &list.Items[j]
			if item.Product == nil {
				continue
			}
			line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			listValue = listValue.Add(line)

			agg := products[item.ProductID]
			if agg == nil {
				agg = &productAgg{name: item.Product.Name}
				products[item.ProductID] = agg
			}
			agg.quantity += int64(item.Quantity)

			wAgg := wholesalers[list.WholesalerID]
			if wAgg == nil {
				name := ""
				if list.Wholesaler != nil {
					name = list.Wholesaler.Name
				}
				wAgg = &wholesalerAgg{name: name, total: decimal.Zero}
				wholesalers[list.WholesalerID] = wAgg
			}
			wAgg.total = wAgg.total.Add(line)
		}

		report.TotalSales = report.TotalSales.Add(listValue)
		if len(list.Items) > 0 {
			listsWithValue++
			sumOfListValues = sumOfListValues.Add(listValue)
		}
	}

	// mean of per-list sums, lists without items excluded
	if listsWithValue > 0 {
		report.AverageOrderValue = sumOfListValues.
			DivRound(decimal.NewFromInt(int64(listsWithValue)), 2)
	}

	report.TopProducts = make([]ProductQuantity, 0, len(products))
	for id, agg := range products {
		report.TopProducts = append(report.TopProducts, ProductQuantity{
			ProductID: id,
			Name:      agg.name,
			Quantity:  agg.quantity,
		})
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		a, b := report.TopProducts[i], report.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(report.TopProducts) > topLimit {
		report.TopProducts = report.TopProducts[:topLimit]
	}

	report.SalesByWholesaler = make([]WholesalerSales, 0, len(wholesalers))
	for id, agg := range wholesalers {
		report.SalesByWholesaler = append(report.SalesByWholesaler, WholesalerSales{
			WholesalerID: id,
			Name:         agg.name,
			TotalSales:   agg.total,
		})
	}
	sort.Slice(report.SalesByWholesaler, func(i, j int) bool {
		a, b := report.SalesByWholesaler[i], report.SalesByWholesaler[j]
		if !a.TotalSales.Equal(b.TotalSales) {
			return a.TotalSales.GreaterThan(b.TotalSales)
		}
		return a.Name < b.Name
	})

	report.OrderFrequency = make([]DateCount, 0, len(frequency))
	for date, count := range frequency {
		report.OrderFrequency = append(report.OrderFrequency, DateCount{Date: date, Count: count})
	}
	sort.Slice(report.OrderFrequency, func(i, j int) bool {
		return report.OrderFrequency[i].Date < report.OrderFrequency[j].Date
	})

	return report, nil
}
