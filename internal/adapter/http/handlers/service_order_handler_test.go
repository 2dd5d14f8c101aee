package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sisgenius/internal/adapter/http/handlers/mocks"
	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestServiceOrderHandler_GetOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.GET("/v1/orders/:id", h.GetOrder)

		orders.EXPECT().GetByID(gomock.Any(), "os-gone").Return(entities.ServiceOrder{}, usecase.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/os-gone", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success with computed totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.GET("/v1/orders/:id", h.GetOrder)

		orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{
			ID:       "os-1",
			Number:   6,
			Status:   entities.OrderStatusOpen,
			Services: []entities.ServiceLineItem{{Name: "screen swap", UnitPrice: 100, Quantity: 1}},
			Products: []entities.ProductLineItem{{Name: "screen", UnitPrice: 50, Quantity: 1}},
			Discount: 20,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/os-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["grand_total"] != float64(130) {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestServiceOrderHandler_ListOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.GET("/v1/orders", h.ListOrders)

		orders.EXPECT().List(gomock.Any()).Return([]entities.ServiceOrder{
			{ID: "os-1", Number: 1},
			{ID: "os-2", Number: 2},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.GET("/v1/orders", h.ListOrders)

		orders.EXPECT().List(gomock.Any()).Return(nil, errors.New("scan failed"))

		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.PATCH("/v1/orders/:id/status", h.UpdateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/os-1/status", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown status label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.PATCH("/v1/orders/:id/status", h.UpdateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/os-1/status", bytes.NewBufferString(`{"status":"done"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success carries order and offer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.PATCH("/v1/orders/:id/status", h.UpdateStatus)

		orders.EXPECT().ApplyStatus(gomock.Any(), "os-1", entities.OrderStatusCompleted).Return(
			entities.ServiceOrder{ID: "os-1", Number: 9, Status: entities.OrderStatusCompleted},
			usecase.NotificationOffer{Available: true, Destination: "+55", Message: "ready"},
			nil,
		)

		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/os-1/status", bytes.NewBufferString(`{"status":"COMPLETED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["order"]["status"] != "completed" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
		if body["notification"]["available"] != true {
			t.Fatalf("expected offer in response: %s", w.Body.String())
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.PATCH("/v1/orders/:id/status", h.UpdateStatus)

		orders.EXPECT().ApplyStatus(gomock.Any(), "os-gone", entities.OrderStatusOpen).Return(
			entities.ServiceOrder{}, usecase.NotificationOffer{}, usecase.ErrOrderNotFound,
		)

		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/os-gone/status", bytes.NewBufferString(`{"status":"open"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_NotifyCustomer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.POST("/v1/orders/:id/status/notify", h.NotifyCustomer)

		orders.EXPECT().Notify(gomock.Any(), "os-1").Return(usecase.NotificationOffer{
			Available:   true,
			Destination: "+55",
			Message:     "on the way",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/status/notify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("no contact channel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mocks.NewMockIOrderUseCase(ctrl)
		h := NewServiceOrderHandler(orders, nil)

		r := gin.New()
		r.POST("/v1/orders/:id/status/notify", h.NotifyCustomer)

		orders.EXPECT().Notify(gomock.Any(), "os-1").Return(usecase.NotificationOffer{}, usecase.ErrNotificationUnavailable)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/status/notify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_BackfillNumbers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sequence := mocks.NewMockISequenceUseCase(ctrl)
		h := NewServiceOrderHandler(nil, sequence)

		r := gin.New()
		r.POST("/v1/admin/orders/backfill-numbers", h.BackfillNumbers)

		sequence.EXPECT().BackfillMissingNumbers(gomock.Any()).Return(usecase.BackfillResult{
			Assigned:   3,
			MaxNumber:  5,
			NewCounter: 8,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/backfill-numbers", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["assigned"] != float64(3) || body["new_counter"] != float64(8) {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("batch too large", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sequence := mocks.NewMockISequenceUseCase(ctrl)
		h := NewServiceOrderHandler(nil, sequence)

		r := gin.New()
		r.POST("/v1/admin/orders/backfill-numbers", h.BackfillNumbers)

		sequence.EXPECT().BackfillMissingNumbers(gomock.Any()).Return(usecase.BackfillResult{}, usecase.ErrBackfillBatchTooLarge)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/backfill-numbers", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestMapOrderError(t *testing.T) {
	if got := mapOrderError(usecase.ErrInvalidOrderID); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapOrderError(usecase.ErrInvalidStatus); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapOrderError(usecase.ErrOrderNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapOrderError(usecase.ErrNotificationUnavailable); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapOrderError(usecase.ErrBackfillBatchTooLarge); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapOrderError(usecase.ErrNotifierUnconfigured); got.HTTPStatus != http.StatusServiceUnavailable {
		t.Fatalf("expected 503")
	}
	if got := mapOrderError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
