package app

import (
	"context"
	"log/slog"

	"github.com/shopcore/storefront/internal/orders/app/commands"
	"github.com/shopcore/storefront/internal/orders/app/queries"
	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/metrics"
	"github.com/shopcore/storefront/internal/orders/ports"
)

// Service bundles use cases for handling orders via the API.
type Service struct {
	idemStore         ports.IdempotencyStore
	placeOrderHandler commands.CommandHandler
	statusHandler     *commands.UpdateOrderStatusCommandHandler
	getOrderHandler   *queries.GetOrderQueryHandler
	listOrdersHandler *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	inventory ports.InventoryStore,
	users ports.UserReader,
	addresses ports.AddressReader,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewPlaceOrderCommandHandler(repo, inventory, users, addresses, events)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		idemStore:         idem,
		placeOrderHandler: observableHandler,
		statusHandler:     commands.NewUpdateOrderStatusCommandHandler(repo, inventory, events),
		getOrderHandler:   queries.NewGetOrderQueryHandler(repo),
		listOrdersHandler: queries.NewListOrdersQueryHandler(repo),
	}
}

// PlaceOrder runs the checkout core: validation, stock reservation, order insert.
func (s *Service) PlaceOrder(ctx context.Context, cmd commands.PlaceOrderCommand) (*domain.Order, error) {
	return s.placeOrderHandler.Handle(ctx, cmd)
}

// UpdateOrderStatus advances an order through its state machine.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return s.statusHandler.Handle(ctx, commands.UpdateOrderStatusCommand{OrderID: id, Status: status})
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns orders using a filter, newest first.
func (s *Service) ListOrders(ctx context.Context, query queries.ListOrdersQuery) ([]domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx, query)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
