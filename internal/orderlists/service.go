package orderlists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

// Service exposes the restocking list consolidator.
type Service interface {
	AddToOrder(ctx context.Context, input AddToOrderInput) (*OrderListDTO, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*OrderListDTO, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	FinalizeCadence(ctx context.Context, cadence enums.Cadence) (int64, error)
	FinalizeList(ctx context.Context, id uuid.UUID) (*OrderListDTO, error)
	ListPending(ctx context.Context, cadence enums.Cadence) ([]OrderListDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderListDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs an order list service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order list repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

// AddToOrder appends a line to the wholesaler's open list for the cadence,
// creating the list when none is open. Lines are append-only; adding the
// same product twice keeps two rows.
func (s *service) AddToOrder(ctx context.Context, input AddToOrderInput) (*OrderListDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.repo.FindProductWithWholesaler(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product.Wholesaler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product has no wholesaler")
	}

	cadence := enums.CadenceFor(product.Wholesaler.IsDaily)
	if input.CadenceOverride != nil {
		if !input.CadenceOverride.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cadence")
		}
		cadence = *input.CadenceOverride
	}

	var listID uuid.UUID
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		list, err := s.findOrCreatePending(ctx, repo, product.WholesalerID, cadence)
		if err != nil {
			return err
		}
		listID = list.ID

		item := &models.OrderListItem{
			OrderListID: list.ID,
			ProductID:   product.ID,
			Quantity:    input.Quantity,
			Comment:     input.Comment,
		}
		_, err = repo.CreateItem(ctx, item)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding to order list")
	}

	return s.Get(ctx, listID)
}

// findOrCreatePending resolves the open list, retrying the lookup once when
// a concurrent request won the partial unique index race.
func (s *service) findOrCreatePending(ctx context.Context, repo *Repository, wholesalerID uuid.UUID, cadence enums.Cadence) (*models.OrderList, error) {
	list, err := repo.FindPendingList(ctx, wholesalerID, cadence)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &models.OrderList{
		Date:         s.now().Truncate(24 * time.Hour),
		WholesalerID: wholesalerID,
		Status:       enums.OrderListStatusPending,
		Cadence:      cadence,
	}
	// The guarded insert keeps the surrounding transaction usable when a
	// concurrent request already created the list, so the retry lookup
	// lands on the winner's row instead of failing in an aborted tx.
	if _, err := repo.CreateListGuarded(ctx, created); err != nil {
		if db.IsUniqueViolation(err, "order_lists_pending_unique") {
			return repo.FindPendingList(ctx, wholesalerID, cadence)
		}
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*OrderListDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order list item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order list item")
	}

	item.Quantity = quantity
	if _, err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order list item")
	}
	return s.Get(ctx, item.OrderListID)
}

func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order list item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order list item")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing order list item")
	}
	return nil
}

// FinalizeCadence closes every open list for the cadence. Re-running is a
// no-op since only pending rows are touched.
func (s *service) FinalizeCadence(ctx context.Context, cadence enums.Cadence) (int64, error) {
	if !cadence.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid cadence")
	}
	count, err := s.repo.FinalizePendingByCadence(ctx, cadence, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalizing order lists")
	}
	return count, nil
}

func (s *service) FinalizeList(ctx context.Context, id uuid.UUID) (*OrderListDTO, error) {
	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order list")
	}
	if list.Status == enums.OrderListStatusFinalized {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order list already finalized")
	}

	if _, err := s.repo.FinalizeListByID(ctx, id, s.now()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalizing order list")
	}
	return s.Get(ctx, id)
}

func (s *service) ListPending(ctx context.Context, cadence enums.Cadence) ([]OrderListDTO, error) {
	if !cadence.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cadence")
	}
	lists, err := s.repo.ListPendingByCadence(ctx, cadence)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing pending order lists")
	}
	return NewOrderListDTOs(lists), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	lists, total, err := s.repo.ListHistory(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing order lists")
	}
	return &ListResult{Lists: NewOrderListDTOs(lists), Total: total}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderListDTO, error) {
	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order list")
	}
	return NewOrderListDTO(list), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindListByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order list not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order list")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteListWithItems(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order list")
	}
	return nil
}
