package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

// Service exposes wholesaler and product catalog operations.
type Service interface {
	CreateWholesaler(ctx context.Context, input CreateWholesalerInput) (*WholesalerDTO, error)
	ListWholesalers(ctx context.Context) ([]WholesalerDTO, error)
	UpdateWholesaler(ctx context.Context, id uuid.UUID, input UpdateWholesalerInput) (*WholesalerDTO, error)
	DeleteWholesaler(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	BulkDeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductDTO, error)

	ImportSpreadsheet(ctx context.Context, file io.Reader) (*ImportResult, error)
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) CreateWholesaler(ctx context.Context, input CreateWholesalerInput) (*WholesalerDTO, error) {
	w := &models.Wholesaler{
		Name:          strings.TrimSpace(input.Name),
		IsDaily:       input.IsDaily,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
	}
	created, err := s.repo.CreateWholesaler(ctx, w)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating wholesaler")
	}
	return NewWholesalerDTO(created), nil
}

func (s *service) ListWholesalers(ctx context.Context) ([]WholesalerDTO, error) {
	wholesalers, err := s.repo.ListWholesalers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing wholesalers")
	}
	return NewWholesalerDTOs(wholesalers), nil
}

func (s *service) UpdateWholesaler(ctx context.Context, id uuid.UUID, input UpdateWholesalerInput) (*WholesalerDTO, error) {
	w, err := s.repo.FindWholesalerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wholesaler not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wholesaler")
	}

	if input.Name != nil {
		w.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsDaily != nil {
		w.IsDaily = *input.IsDaily
	}
	if input.ContactPerson != nil {
		w.ContactPerson = input.ContactPerson
	}
	if input.Email != nil {
		w.Email = input.Email
	}
	if input.Phone != nil {
		w.Phone = input.Phone
	}

	saved, err := s.repo.SaveWholesaler(ctx, w)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating wholesaler")
	}
	return NewWholesalerDTO(saved), nil
}

func (s *service) DeleteWholesaler(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindWholesalerByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "wholesaler not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wholesaler")
	}

	count, err := s.repo.CountProductsByWholesaler(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting wholesaler products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "wholesaler still has products").
			WithDetails(map[string]any{"product_count": count})
	}

	if err := s.repo.DeleteWholesaler(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting wholesaler")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if _, err := s.repo.FindWholesalerByID(ctx, input.WholesalerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wholesaler not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wholesaler")
	}

	p := &models.Product{
		Code:             strings.TrimSpace(input.Code),
		Name:             strings.TrimSpace(input.Name),
		Size:             input.Size,
		Price:            input.Price,
		WholesalerID:     input.WholesalerID,
		AvailableInStore: input.AvailableInStore,
	}
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return NewProductDTO(created), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return NewProductDTOs(products), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	if input.Code != nil {
		p.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Size != nil {
		p.Size = input.Size
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		p.Price = *input.Price
	}
	if input.WholesalerID != nil {
		if _, err := s.repo.FindWholesalerByID(ctx, *input.WholesalerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wholesaler not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wholesaler")
		}
		p.WholesalerID = *input.WholesalerID
	}
	if input.AvailableInStore != nil {
		p.AvailableInStore = *input.AvailableInStore
	}

	// Save would write the preloaded association back, so detach it first.
	p.Wholesaler = nil

	saved, err := s.repo.SaveProduct(ctx, p)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return NewProductDTO(saved), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteOrderListItemsByProducts(ctx, []uuid.UUID{id}); err != nil {
			return err
		}
		return repo.DeleteProduct(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func (s *service) BulkDeleteProducts(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one product id is required")
	}

	var deleted int64
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteOrderListItemsByProducts(ctx, ids); err != nil {
			return err
		}
		var err error
		deleted, err = repo.DeleteProducts(ctx, ids)
		return err
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk deleting products")
	}
	return deleted, nil
}

func (s *service) SearchProducts(ctx context.Context, query string, limit int) ([]ProductDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ProductDTO{}, nil
	}
	products, err := s.repo.SearchProductsByName(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching products")
	}
	return NewProductDTOs(products), nil
}
