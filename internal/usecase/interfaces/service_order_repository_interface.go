package interfaces

import (
	"context"
	"sisgenius/internal/domain/entities"
)

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// Conventions shared by all implementations:
//   - "not found" is reported as a zero-value order (empty ID), not an error.
//   - UpdateStatus must write only the status (plus the updated_at audit
//     stamp) so concurrent edits to other fields by another session are
//     never clobbered, and must return the post-write document so callers
//     can reconcile list views without a reload.

type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, error)
}
