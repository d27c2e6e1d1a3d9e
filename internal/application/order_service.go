package application

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/metrics"
)

// OrderService handles order book management
type OrderService struct {
	orders       domain.OrderRepository
	routes       domain.RouteRepository
	producer     kafka.EventPublisher
	eventFactory *events.Factory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewOrderService creates an order service
func NewOrderService(
	orders domain.OrderRepository,
	routes domain.RouteRepository,
	producer kafka.EventPublisher,
	eventFactory *events.Factory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *OrderService {
	return &OrderService{
		orders:       orders,
		routes:       routes,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger.WithComponent("order-service"),
	}
}

// Create registers a new order
func (s *OrderService) Create(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	existing, err := s.orders.FindByOrderID(ctx, cmd.OrderID)
	if err != nil {
		s.logger.WithError(err).Error("failed to look up order")
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("order %d already exists", cmd.OrderID))
	}

	route, err := s.routes.FindByRouteID(ctx, cmd.RouteID)
	if err != nil {
		s.logger.WithError(err).Error("failed to look up route")
		return nil, fmt.Errorf("failed to look up route: %w", err)
	}
	if route == nil {
		return nil, errors.ErrValidation(fmt.Sprintf("route %d does not exist", cmd.RouteID))
	}

	order, err := domain.NewOrder(cmd.OrderID, cmd.ValueRs, cmd.RouteID)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.WithError(err).Error("failed to save order")
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecordCreated("order")
	}
	s.publishOrderCreated(ctx, order)
	s.logger.Info("order created", "order_id", order.OrderID, "route_id", order.RouteID)

	return order, nil
}

// Get retrieves an order by id
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid order id")
	}

	order, err := s.orders.FindByID(ctx, objectID)
	if err != nil {
		s.logger.WithError(err).Error("failed to find order")
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrNotFoundWithID("order", id)
	}

	return order, nil
}

// List retrieves orders, paginated
func (s *OrderService) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Order, int64, error) {
	orders, total, err := s.orders.FindAll(ctx, pagination)
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// Update modifies an existing order
func (s *OrderService) Update(ctx context.Context, id string, cmd UpdateOrderCommand) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.ValueRs != nil {
		if *cmd.ValueRs < 0 {
			return nil, errors.ErrValidation(domain.ErrInvalidOrderValue.Error())
		}
		order.ValueRs = *cmd.ValueRs
	}
	if cmd.RouteID != nil {
		route, err := s.routes.FindByRouteID(ctx, *cmd.RouteID)
		if err != nil {
			s.logger.WithError(err).Error("failed to look up route")
			return nil, fmt.Errorf("failed to look up route: %w", err)
		}
		if route == nil {
			return nil, errors.ErrValidation(fmt.Sprintf("route %d does not exist", *cmd.RouteID))
		}
		order.RouteID = *cmd.RouteID
	}
	if cmd.DeliveryTime != nil {
		order.DeliveryTime = cmd.DeliveryTime
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.WithError(err).Error("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info("order updated", "order_id", order.OrderID)
	return order, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, order.ID); err != nil {
		s.logger.WithError(err).Error("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info("order deleted", "order_id", order.OrderID)
	return nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.producer == nil {
		return
	}
	event := s.eventFactory.CreateOrderCreatedEvent(ctx, events.OrderCreatedData{
		OrderID:       order.OrderID,
		ValueRs:       order.ValueRs,
		AssignedRoute: order.RouteID,
	})
	if err := s.producer.PublishEvent(ctx, kafka.Topics.OrderEvents, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish order created event")
	}
}
