package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
)

// Repository wires together daily sales persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// EmployeeExists reports whether a user row exists for the given id.
func (r *Repository) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSales inserts a new reconciliation record.
func (r *Repository) CreateSales(ctx context.Context, record *models.DailySales) (*models.DailySales, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindSalesByID loads the record with its evidence documents.
func (r *Repository) FindSalesByID(ctx context.Context, id uuid.UUID) (*models.DailySales, error) {
	var record models.DailySales
	err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSales returns one page of records matching the filters, newest first.
func (r *Repository) ListSales(ctx context.Context, input ListInput) ([]models.DailySales, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DailySales{})

	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.StartDate != nil {
		query = query.Where("date >= ?", *input.StartDate)
	}
	if input.EndDate != nil {
		query = query.Where("date <= ?", *input.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []models.DailySales
	err := query.
		Preload("Documents").
		Order("date desc").
		Limit(limit).
		Offset(input.Offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// DeleteSalesWithDocuments removes the record and its evidence rows,
// documents first.
func (r *Repository) DeleteSalesWithDocuments(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&models.SalesDocument{}, "sales_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&models.DailySales{}, "id = ?", id).Error
}

// CreateDocument inserts a new evidence row.
func (r *Repository) CreateDocument(ctx context.Context, doc *models.SalesDocument) (*models.SalesDocument, error) {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocumentByID loads a single evidence row.
func (r *Repository) FindDocumentByID(ctx context.Context, id uuid.UUID) (*models.SalesDocument, error) {
	var doc models.SalesDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes an evidence row by id.
func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SalesDocument{}, "id = ?", id).Error
}

// ListDocumentsBySales returns the evidence rows of one record.
func (r *Repository) ListDocumentsBySales(ctx context.Context, salesID uuid.UUID) ([]models.SalesDocument, error) {
	var docs []models.SalesDocument
	err := r.db.WithContext(ctx).
		Where("sales_id = ?", salesID).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
