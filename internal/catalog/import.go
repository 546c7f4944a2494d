package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
	"github.com/avillagomez/backoffice-backend/pkg/logger"
)

var requiredImportColumns = []string{"code", "name", "size", "price", "wholesaler_id"}

// ImportSpreadsheet loads products from an .xlsx price list. The header row
// must carry the required columns; every data row either inserts or the
// whole batch is rejected.
func (s *service) ImportSpreadsheet(ctx context.Context, file io.Reader) (*ImportResult, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is not a valid xlsx spreadsheet")
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no sheets")
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading spreadsheet rows")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet is empty")
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	wholesalerSeen := map[uuid.UUID]bool{}
	products := make([]models.Product, 0, len(rows)-1)
	var rowErrs error

	for i, row := range rows[1:] {
		product, err := parseImportRow(row, columns)
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("row %d: %w", i+2, err))
			continue
		}
		wholesalerSeen[product.WholesalerID] = false
		products = append(products, *product)
	}

	if rowErrs != nil {
		logger.FromContext(ctx).Warn(ctx, "spreadsheet import rejected", rowErrs)
		first := multierr.Errors(rowErrs)[0]
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, rowErrs, first.Error())
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no data rows")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for id := range wholesalerSeen {
			if _, err := repo.FindWholesalerByID(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("unknown wholesaler %s", id))
			}
		}
		return repo.CreateProducts(ctx, products)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting imported products")
	}

	return &ImportResult{Imported: len(products)}, nil
}

// mapHeader locates each required column, case-insensitively.
func mapHeader(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for idx, cell := range header {
		columns[strings.ToLower(strings.TrimSpace(cell))] = idx
	}
	for _, required := range requiredImportColumns {
		if _, ok := columns[required]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("missing required column %q", required))
		}
	}
	return columns, nil
}

func parseImportRow(row []string, columns map[string]int) (*models.Product, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	code := cell("code")
	name := cell("name")
	if code == "" || name == "" {
		return nil, fmt.Errorf("code and name are required")
	}

	price, err := decimal.NewFromString(cell("price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", cell("price"))
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price %s cannot be negative", price)
	}

	wholesalerID, err := uuid.Parse(cell("wholesaler_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid wholesaler_id %q", cell("wholesaler_id"))
	}

	product := &models.Product{
		Code:             code,
		Name:             name,
		Price:            price,
		WholesalerID:     wholesalerID,
		AvailableInStore: true,
	}
	if size := cell("size"); size != "" {
		product.Size = &size
	}
	return product, nil
}
