package handlers

import (
	"errors"
	"net/http"

	request "sisgenius/internal/adapter/http/dto/request"
	response "sisgenius/internal/adapter/http/dto/response"
	"sisgenius/internal/usecase"
	"sisgenius/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Invalid status payload", http.StatusBadRequest)

// ServiceOrderHandler exposes committed orders: reads for list/detail views,
// the status transition machine and the number backfill maintenance pass.

type ServiceOrderHandler struct {
	orders   usecase.IOrderUseCase
	sequence usecase.ISequenceUseCase
}

func NewServiceOrderHandler(orders usecase.IOrderUseCase, sequence usecase.ISequenceUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{orders: orders, sequence: sequence}
}

func (h *ServiceOrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

func (h *ServiceOrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

// UpdateStatus applies a lifecycle transition. The response carries the
// post-write document plus the notification offer; accepting the offer is a
// separate call and declining it is simply never making that call.
func (h *ServiceOrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	status, ok := payload.ResolveStatus()
	if !ok {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	order, offer, err := h.orders.ApplyStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.StatusChangeResponse{
		Order:        response.FromServiceOrder(order),
		Notification: response.FromNotificationOffer(offer),
	})
}

func (h *ServiceOrderHandler) NotifyCustomer(c *gin.Context) {
	offer, err := h.orders.Notify(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromNotificationOffer(offer))
}

func (h *ServiceOrderHandler) BackfillNumbers(c *gin.Context) {
	result, err := h.sequence.BackfillMissingNumbers(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBackfillResult(result))
}

func mapOrderError(err error) *pkg.DomainError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Invalid order id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid order status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotificationUnavailable):
		return pkg.NewDomainErrorSimple("NO_CONTACT_CHANNEL", "Customer has no contact channel on file", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotifierUnconfigured):
		return pkg.NewDomainErrorSimple("NOTIFIER_UNCONFIGURED", "Notification gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBackfillBatchTooLarge):
		return pkg.NewDomainErrorSimple("BACKFILL_TOO_LARGE", "Backfill batch exceeds transaction limit", http.StatusConflict)
	default:
		return pkg.NewDomainErrorSimple("INTERNAL_ERROR", "Internal error", http.StatusInternalServerError)
	}
}
