package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase/interfaces"
)

var (
	ErrInvalidOrderID = errors.New("invalid order id")
	ErrInvalidStatus  = errors.New("invalid order status")

	// ErrNotificationUnavailable means the customer has no contact channel
	// on file. The status change that triggered the offer has already
	// succeeded and is never rolled back because of it.
	ErrNotificationUnavailable = errors.New("customer has no contact channel on file")

	// ErrNotifierUnconfigured means no messaging gateway is wired. Offers
	// are still computed and shown; they just cannot be accepted.
	ErrNotifierUnconfigured = errors.New("notification gateway not configured")
)

// NotificationOffer is the optional customer-facing side effect of a status
// change. The caller may decline it; declining is a normal, final outcome.
type NotificationOffer struct {
	Available   bool   `json:"available"`
	Destination string `json:"destination,omitempty"`
	Message     string `json:"message,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// IOrderUseCase exposes the committed-order side of the engine: reads for
// list/detail views and the status transition machine.

type IOrderUseCase interface {
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	ApplyStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, NotificationOffer, error)
	Notify(ctx context.Context, id string) (NotificationOffer, error)
}

// OrderUseCase applies status changes to committed orders.
//
// The workflow is a complete graph: any status may follow any other. The
// machine's responsibilities are (a) persisting the new state as a
// single-field update so concurrent edits to other fields survive, (b)
// returning the post-write document so list views reconcile without a
// reload and nothing is updated speculatively, and (c) coordinating the
// optional customer notification.
type OrderUseCase struct {
	orders    interfaces.IServiceOrderRepository
	customers interfaces.ICustomerRepository
	gateway   interfaces.INotificationGateway
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(orders interfaces.IServiceOrderRepository, customers interfaces.ICustomerRepository, gateway interfaces.INotificationGateway) *OrderUseCase {
	return &OrderUseCase{orders: orders, customers: customers, gateway: gateway}
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidOrderID
	}

	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	return u.orders.List(ctx)
}

// ApplyStatus persists the new status and builds the notification offer.
//
// The durable write happens first and alone decides success: if it fails the
// whole operation aborts and no caller-visible state may change. The offer
// is computed afterwards; a customer without a contact channel yields an
// unavailable offer, not an error.
func (u *OrderUseCase) ApplyStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, NotificationOffer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, NotificationOffer{}, ErrInvalidOrderID
	}
	if !status.Valid() {
		return entities.ServiceOrder{}, NotificationOffer{}, ErrInvalidStatus
	}

	updated, err := u.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Printf("[order][usecase] status write failed id=%s status=%s err=%v", id, status, err)
		return entities.ServiceOrder{}, NotificationOffer{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, NotificationOffer{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] status applied id=%s status=%s", id, status)

	offer := u.buildOffer(ctx, updated)
	return updated, offer, nil
}

// Notify accepts a previously offered notification: it re-renders the
// message from the current order state and hands it to the external
// messaging gateway.
func (u *OrderUseCase) Notify(ctx context.Context, id string) (NotificationOffer, error) {
	order, err := u.GetByID(ctx, id)
	if err != nil {
		return NotificationOffer{}, err
	}

	offer := u.buildOffer(ctx, order)
	if !offer.Available {
		return offer, ErrNotificationUnavailable
	}
	if u.gateway == nil {
		return offer, ErrNotifierUnconfigured
	}

	if err := u.gateway.SendMessage(ctx, offer.Destination, offer.Message); err != nil {
		log.Printf("[order][usecase] notification send failed id=%s err=%v", id, err)
		return offer, err
	}
	log.Printf("[order][usecase] notification sent id=%s destination=%s", id, offer.Destination)
	return offer, nil
}

func (u *OrderUseCase) buildOffer(ctx context.Context, order entities.ServiceOrder) NotificationOffer {
	customer, err := u.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		log.Printf("[order][usecase] customer lookup failed id=%s customer=%s err=%v", order.ID, order.CustomerID, err)
		return NotificationOffer{Available: false, Reason: "customer lookup failed"}
	}

	destination := customer.ContactChannel()
	if destination == "" {
		return NotificationOffer{Available: false, Reason: "no contact channel on file"}
	}

	return NotificationOffer{
		Available:   true,
		Destination: destination,
		Message:     renderStatusMessage(customer, order),
	}
}

func renderStatusMessage(customer entities.Customer, order entities.ServiceOrder) string {
	name := customer.Name
	if name == "" {
		name = "customer"
	}
	return fmt.Sprintf("Hello %s! Your service order #%d is now %q. Questions? Just reply to this message.", name, order.Number, statusLabel(order.Status))
}

var statusLabels = map[entities.OrderStatus]string{
	entities.OrderStatusQuote:          "under quotation",
	entities.OrderStatusOpen:           "open",
	entities.OrderStatusInProgress:     "in progress",
	entities.OrderStatusAwaitingParts:  "awaiting parts",
	entities.OrderStatusApproved:       "approved",
	entities.OrderStatusCompleted:      "completed",
	entities.OrderStatusCanceled:       "canceled",
	entities.OrderStatusWarrantyReturn: "back for warranty service",
}

func statusLabel(s entities.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
