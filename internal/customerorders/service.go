package customerorders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/avillagomez/backoffice-backend/pkg/db"
	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

// Service exposes the counter-order ledger.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CustomerOrderDTO, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*CustomerOrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*CustomerOrderDTO, error)
	ListOrders(ctx context.Context, input ListInput) (*ListResult, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, orderID uuid.UUID, input AddItemInput) (*CustomerOrderDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*CustomerOrderDTO, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*CustomerOrderDTO, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductSuggestionDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a customer order service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*CustomerOrderDTO, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	status := enums.CustomerOrderStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		status = *input.Status
	}

	orderDate := s.now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.CustomerOrder{
		CustomerName:    name,
		CustomerContact: input.CustomerContact,
		OrderDate:       orderDate,
		Status:          status,
		IsPaid:          input.IsPaid,
		TotalAmount:     decimal.Zero,
	}
	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating customer order")
	}
	return s.GetOrder(ctx, order.ID)
}

func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*CustomerOrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
		}
		order.CustomerName = name
	}
	if input.CustomerContact != nil {
		order.CustomerContact = input.CustomerContact
	}
	if input.IsPaid != nil {
		order.IsPaid = *input.IsPaid
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		order.Status = *input.Status
	}

	order.Items = nil
	if _, err := s.repo.SaveOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating customer order")
	}
	return s.GetOrder(ctx, id)
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*CustomerOrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCustomerOrderDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context, input ListInput) (*ListResult, error) {
	orders, total, err := s.repo.ListOrders(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing customer orders")
	}
	return &ListResult{Orders: NewCustomerOrderDTOs(orders), Total: total}, nil
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findOrder(ctx, id); err != nil {
		return err
	}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteOrderWithItems(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting customer order")
	}
	return nil
}

// AddItem appends a line resolved from the catalog by name, or an
// off-catalog line when a custom name is given. The order total is
// recomputed from the rows in the same transaction.
func (s *service) AddItem(ctx context.Context, orderID uuid.UUID, input AddItemInput) (*CustomerOrderDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	status := enums.OrderItemStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
		}
		status = *input.Status
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := &models.CustomerOrderItem{
		CustomerOrderID: order.ID,
		Quantity:        input.Quantity,
		Status:          status,
	}

	switch {
	case input.CustomName != nil && strings.TrimSpace(*input.CustomName) != "":
		if input.Price == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price is required for off-catalog items")
		}
		name := strings.TrimSpace(*input.CustomName)
		item.CustomProductName = &name
		item.Price = *input.Price

	case input.ProductNameQuery != nil && strings.TrimSpace(*input.ProductNameQuery) != "":
		query := strings.TrimSpace(*input.ProductNameQuery)
		product, err := s.repo.FindFirstProductByName(ctx, query)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no product matches the given name").
					WithDetails(map[string]any{"query": query})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product by name")
		}
		item.ProductID = &product.ID
		item.Price = product.Price
		if input.Price != nil {
			item.Price = *input.Price
		}

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a product name or a custom item name is required")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, repo, order.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding order item")
	}
	return s.GetOrder(ctx, order.ID)
}

func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*CustomerOrderDTO, error) {
	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		item.Price = *input.Price
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
		}
		item.Status = *input.Status
	}

	item.Product = nil
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.SaveItem(ctx, item); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, repo, item.CustomerOrderID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order item")
	}
	return s.GetOrder(ctx, item.CustomerOrderID)
}

func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) (*CustomerOrderDTO, error) {
	item, err := s.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, repo, item.CustomerOrderID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing order item")
	}
	return s.GetOrder(ctx, item.CustomerOrderID)
}

func (s *service) SearchProducts(ctx context.Context, query string, limit int) ([]ProductSuggestionDTO, error) {
	products, err := s.repo.SearchProductsByName(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching products")
	}
	return NewProductSuggestionDTOs(products), nil
}

// recomputeTotal rebuilds total_amount from the surviving rows so the
// stored figure never drifts from the lines.
func (s *service) recomputeTotal(ctx context.Context, repo *Repository, orderID uuid.UUID) error {
	items, err := repo.ListItemsByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
	}
	order, err := repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	order.TotalAmount = total
	order.Items = nil
	_, err = repo.SaveOrder(ctx, order)
	return err
}

func (s *service) findOrder(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading customer order")
	}
	return order, nil
}

func (s *service) findItem(ctx context.Context, id uuid.UUID) (*models.CustomerOrderItem, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order item")
	}
	return item, nil
}
