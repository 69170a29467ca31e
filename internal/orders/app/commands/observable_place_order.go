package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/metrics"
	"github.com/shopcore/storefront/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordPlacementDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"user_id", cmd.UserID,
		"requested_items", len(cmd.Items),
		"payment_method", string(cmd.PaymentMethod),
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		if order == nil {
			telemetry.RecordSpanError(span, err)
			o.logger.ErrorContext(ctx, "failed to place order",
				"error", err,
				"user_id", cmd.UserID,
			)
			return nil, err
		}
		// Order exists; only the event publish failed.
		o.logger.WarnContext(ctx, "order placed with degraded side effects",
			"error", err,
			"order_id", order.ID,
		)
	}

	if dropped := len(cmd.Items) - len(order.Items); dropped > 0 {
		o.metrics.RecordItemsDropped(ctx, dropped)
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.user_id", order.UserID),
		attribute.Int("order.items", len(order.Items)),
		attribute.Int64("order.total_amount_cents", order.TotalAmountCents),
		attribute.String("order.status", string(order.Status)),
	)

	o.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"items", len(order.Items),
		"total_amount_cents", order.TotalAmountCents,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, err
}
