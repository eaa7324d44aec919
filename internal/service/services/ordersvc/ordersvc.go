package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stxcorp/orders-ms/internal/dal/interfaces/iorderrepo"
	"github.com/stxcorp/orders-ms/internal/dal/interfaces/ioutboxrepo"
	"github.com/stxcorp/orders-ms/internal/dal/postgres"
	"github.com/stxcorp/orders-ms/internal/dal/uow"
	"github.com/stxcorp/orders-ms/internal/service/models/order"
	"github.com/stxcorp/orders-ms/internal/service/models/orderitem"
	"github.com/stxcorp/orders-ms/internal/service/models/outbox"
	"github.com/stxcorp/orders-ms/internal/service/models/product"
)

const defaultPageLimit = 10

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient *postgres.Client
	catalog  productCatalog
	newUOW   func() unitOfWork
}

// productCatalog resolves product ids against the external product catalog.
type productCatalog interface {
	ValidateProducts(ctx context.Context, ids []int64) ([]product.Product, error)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithProductCatalog sets the product catalog client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductCatalog(catalog productCatalog) option {
	return func(s *OrderService) {
		s.catalog = catalog
	}
}

// orderEvent is the payload written to the outbox for order events.
type orderEvent struct {
	EventType string      `json:"eventType"`
	Order     order.Order `json:"order"`
}

// Create creates an order: validates the referenced products against the
// catalog, snapshots their prices, computes totals and persists the order
// with its items and an order.created outbox row in one transaction.
//
// Any failure after input validation is logged with its real cause and
// surfaced as the generic order.ErrCreateFailed.
func (s *OrderService) Create(ctx context.Context, model order.NewOrderModel) (order.Order, error) {
	if len(model.Items) == 0 {
		return order.Order{}, order.ErrEmptyOrder
	}

	products, err := s.catalog.ValidateProducts(ctx, model.ProductIDs())
	if err != nil {
		slog.Error("Product validation failed", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}
	byID := product.MapByID(products)

	now := time.Now()
	ord := order.Order{
		ID:        uuid.NewString(),
		Status:    order.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]orderitem.OrderItem, len(model.Items))
	for i, item := range model.Items {
		p := byID[item.ProductID]
		items[i] = orderitem.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    ord.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: p.PriceCents,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		ord.TotalPriceCents += p.PriceCents * int64(item.Quantity)
		ord.TotalItems += item.Quantity
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		slog.Error("Failed to begin transaction", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	inserted, err := work.OrderRepository().Insert(ctx, ord)
	if err != nil {
		slog.Error("Failed to insert order", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}

	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		slog.Error("Failed to insert order items", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}
	inserted.OrderItems = items

	if err := s.insertOutboxEvent(ctx, work, outbox.QueueOrderCreated, "order.created", inserted); err != nil {
		slog.Error("Failed to insert outbox message", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}

	if err := work.Commit(ctx); err != nil {
		slog.Error("Failed to commit transaction", "error", err)

		return order.Order{}, fmt.Errorf("%w: %w", order.ErrCreateFailed, err)
	}

	// Response shaping only: product names are not persisted.
	for i := range inserted.OrderItems {
		inserted.OrderItems[i].ProductName = byID[inserted.OrderItems[i].ProductID].Name
	}

	return inserted, nil
}

// ChangeStatus overwrites the status of an existing order. Re-applying the
// current status is idempotent and performs no write.
func (s *OrderService) ChangeStatus(
	ctx context.Context,
	id string,
	status order.Status,
) (order.Order, error) {
	if !status.Valid() {
		return order.Order{}, order.ErrInvalidStatus
	}

	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	if ord.Status == status {
		return s.attachItems(ctx, work, ord)
	}

	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, status)
	if err != nil {
		return order.Order{}, err
	}

	// Items are loaded inside the transaction; the repositories are bound to
	// it after Begin.
	updated, err = s.attachItems(ctx, work, updated)
	if err != nil {
		return order.Order{}, err
	}

	if err := s.insertOutboxEvent(ctx, work, outbox.QueueOrderStatusChanged, "order.status_changed", updated); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return updated, nil
}

// GetOrders retrieves one page of orders with their items and page metadata.
func (s *OrderService) GetOrders(
	ctx context.Context,
	pagination order.PaginationModel,
) ([]order.Order, order.PageMeta, error) {
	pagination = normalize(pagination)

	work := s.newUOW()

	filter := &order.QueryOrdersModel{Status: pagination.Status}

	total, err := work.OrderRepository().Count(ctx, filter)
	if err != nil {
		return nil, order.PageMeta{}, err
	}

	filter.Limit = pagination.Limit
	filter.Offset = (pagination.Page - 1) * pagination.Limit

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, order.PageMeta{}, err
	}

	meta := order.PageMeta{
		Total:    total,
		Page:     pagination.Page,
		LastPage: (total + int64(pagination.Limit) - 1) / int64(pagination.Limit),
	}

	if len(orders) == 0 {
		return []order.Order{}, meta, nil
	}

	orderIds := make([]string, len(orders))
	for i, o := range orders {
		orderIds[i] = o.ID
	}
	orderItems, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: orderIds,
	})
	if err != nil {
		return nil, order.PageMeta{}, err
	}

	for i := range orders {
		for _, item := range orderItems {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, meta, nil
}

// GetOrder retrieves a single order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (order.Order, error) {
	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	return s.attachItems(ctx, work, ord)
}

func (s *OrderService) insertOutboxEvent(
	ctx context.Context,
	work unitOfWork,
	queue string,
	eventType string,
	ord order.Order,
) error {
	payload, err := json.Marshal(orderEvent{EventType: eventType, Order: ord})
	if err != nil {
		return err
	}

	return work.OutboxRepository().Insert(ctx, outbox.NewMessage(queue, payload))
}

func (s *OrderService) attachItems(
	ctx context.Context,
	work unitOfWork,
	ord order.Order,
) (order.Order, error) {
	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []string{ord.ID},
	})
	if err != nil {
		return order.Order{}, err
	}
	ord.OrderItems = items

	return ord, nil
}

func normalize(p order.PaginationModel) order.PaginationModel {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = viper.GetInt("server.http.default_page_size")
		if p.Limit <= 0 {
			p.Limit = defaultPageLimit
		}
	}

	return p
}
