package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sisgenius/internal/domain/entities"
	mock_interfaces "sisgenius/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func encodedCreateDraft(t *testing.T, mutate func(*entities.Draft)) string {
	t.Helper()
	d := entities.NewDraftTemplate(time.Now().UTC())
	if mutate != nil {
		mutate(&d)
	}
	raw, err := entities.EncodeDraft(d)
	if err != nil {
		t.Fatalf("encode draft: %v", err)
	}
	return raw
}

func TestDraftManager_Open(t *testing.T) {
	t.Run("empty session id rejected", func(t *testing.T) {
		m := NewDraftManager(nil, nil, nil)
		_, err := m.Open(context.Background(), "", "")
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Fatalf("expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("create mode starts from template when scratch is empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil)

		d, err := m.Open(context.Background(), "sess-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.EditMode() || d.CurrentStep != entities.StepBasics {
			t.Fatalf("unexpected draft: %+v", d)
		}
		if len(d.Order.Equipments) != 1 {
			t.Fatalf("expected template equipment entry, got %+v", d.Order.Equipments)
		}
	})

	t.Run("create mode recovers a persisted draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		raw := encodedCreateDraft(t, func(d *entities.Draft) {
			d.CurrentStep = entities.StepServices
			d.Order.CustomerID = "cust-1"
		})
		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return(raw, true, nil)

		d, err := m.Open(context.Background(), "sess-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.CurrentStep != entities.StepServices || d.Order.CustomerID != "cust-1" {
			t.Fatalf("expected recovered draft, got %+v", d)
		}
	})

	t.Run("create mode discards corrupt scratch data and restarts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("not-json", true, nil)
		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil)

		d, err := m.Open(context.Background(), "sess-1", "")
		if err != nil {
			t.Fatalf("expected clean recovery, got %v", err)
		}
		if d.EditMode() || d.CurrentStep != entities.StepBasics || len(d.Order.Equipments) != 1 {
			t.Fatalf("expected fresh template, got %+v", d)
		}
	})

	t.Run("edit mode clears scratch and loads the record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		m := NewDraftManager(orders, scratch, nil)

		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1", Number: 12, CustomerID: "cust-1"}, nil)

		d, err := m.Open(context.Background(), "sess-1", "os-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.EditMode() || d.OrderID != "os-1" {
			t.Fatalf("expected edit mode, got %+v", d)
		}
		if d.Order.Number != 12 {
			t.Fatalf("expected durable record loaded, got %+v", d.Order)
		}
	})

	t.Run("edit mode unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		m := NewDraftManager(orders, scratch, nil)

		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		orders.EXPECT().GetByID(gomock.Any(), "os-gone").Return(entities.ServiceOrder{}, nil)

		_, err := m.Open(context.Background(), "sess-1", "os-gone")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestDraftManager_Current(t *testing.T) {
	t.Run("no draft anywhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)

		_, err := m.Current(context.Background(), "sess-1")
		if !errors.Is(err, ErrNoActiveDraft) {
			t.Fatalf("expected ErrNoActiveDraft, got %v", err)
		}
	})

	t.Run("recovers from scratch after memory loss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		raw := encodedCreateDraft(t, func(d *entities.Draft) {
			d.Order.TechnicianID = "tech-1"
		})
		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return(raw, true, nil)

		d, err := m.Current(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Order.TechnicianID != "tech-1" {
			t.Fatalf("expected recovered draft, got %+v", d)
		}

		// Recovered draft is cached: no further scratch reads.
		if _, err := m.Current(context.Background(), "sess-1"); err != nil {
			t.Fatalf("unexpected error on cached read: %v", err)
		}
	})

	t.Run("corrupt scratch data yields no draft and self-heals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("not-json", true, nil)
		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)

		_, err := m.Current(context.Background(), "sess-1")
		if !errors.Is(err, ErrNoActiveDraft) {
			t.Fatalf("expected ErrNoActiveDraft, got %v", err)
		}
	})
}

func TestDraftManager_Apply(t *testing.T) {
	t.Run("patch replaces fields and autosaves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil).Times(2)

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}

		discount := 15.0
		d, err := m.Apply(context.Background(), "sess-1", DraftPatch{
			CustomerID: strPtr("cust-1"),
			Discount:   &discount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Order.CustomerID != "cust-1" || d.Order.Discount != 15 {
			t.Fatalf("unexpected draft: %+v", d.Order)
		}
	})

	t.Run("equipment replacement rebinds checklists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil).AnyTimes()

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}

		equipments := []entities.Equipment{{ID: "eq-a", Brand: "Acme", Model: "X1"}}
		checklists := []entities.Checklist{{EquipmentID: "eq-a"}, {EquipmentID: "eq-gone"}}
		d, err := m.Apply(context.Background(), "sess-1", DraftPatch{
			Equipments: &equipments,
			Checklists: &checklists,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(d.Order.Checklists) != 1 || d.Order.Checklists[0].EquipmentID != "eq-a" {
			t.Fatalf("expected orphaned checklist dropped, got %+v", d.Order.Checklists)
		}
	})

	t.Run("clear delivery estimate wins over set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil).AnyTimes()

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}

		est := time.Now().UTC().Add(48 * time.Hour)
		d, err := m.Apply(context.Background(), "sess-1", DraftPatch{
			DeliveryEstimate:      &est,
			ClearDeliveryEstimate: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Order.DeliveryEstimate != nil {
			t.Fatalf("expected estimate cleared, got %v", d.Order.DeliveryEstimate)
		}
	})
}

func TestDraftManager_Autosave(t *testing.T) {
	t.Run("edit mode never touches scratch storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		m := NewDraftManager(orders, scratch, nil)

		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)

		if _, err := m.Open(context.Background(), "sess-1", "os-1"); err != nil {
			t.Fatalf("open: %v", err)
		}

		// No scratch.Set expectation: any write here fails the test.
		if _, err := m.Apply(context.Background(), "sess-1", DraftPatch{TechnicianID: strPtr("tech-1")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("write failure clears the key and notifies the observer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		m := NewDraftManager(nil, scratch, nil)

		var observed error
		m.SetAutosaveObserver(func(err error) { observed = err })

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(errors.New("redis down")).Times(2)
		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil).Times(2)

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open must not fail on autosave error: %v", err)
		}

		d, err := m.Apply(context.Background(), "sess-1", DraftPatch{CustomerID: strPtr("cust-1")})
		if err != nil {
			t.Fatalf("apply must not fail on autosave error: %v", err)
		}
		if d.Order.CustomerID != "cust-1" {
			t.Fatalf("expected patch applied in memory, got %+v", d.Order)
		}
		if observed == nil || observed.Error() != "redis down" {
			t.Fatalf("expected observer notified, got %v", observed)
		}
	})
}

func TestDraftManager_Discard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	scratch := mock_interfaces.NewMockIScratchStore(ctrl)
	m := NewDraftManager(nil, scratch, nil)

	scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil).Times(2)
	scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil)
	scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)

	if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.Discard(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Current(context.Background(), "sess-1"); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("expected draft gone, got %v", err)
	}
}

func TestDraftManager_CreateServiceOrder(t *testing.T) {
	newManager := func(ctrl *gomock.Controller) (*DraftManager, *mock_interfaces.MockIScratchStore, *mock_interfaces.MockIServiceOrderRepository, *mock_interfaces.MockISequenceRepository) {
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		counter := mock_interfaces.NewMockISequenceRepository(ctrl)
		seq := NewSequenceUseCase(counter, orders)
		return NewDraftManager(orders, scratch, seq), scratch, orders, counter
	}

	t.Run("assigns number and stamps the document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m, scratch, orders, counter := newManager(ctrl)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil).AnyTimes()

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, err := m.Apply(context.Background(), "sess-1", DraftPatch{CustomerID: strPtr("cust-1")}); err != nil {
			t.Fatalf("apply: %v", err)
		}

		counter.EXPECT().Increment(gomock.Any()).Return(int64(7), nil)
		orders.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.ServiceOrder{})).DoAndReturn(
			func(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.ID == "" || o.Number != 7 || o.CustomerID != "cust-1" {
					t.Fatalf("unexpected order: %+v", o)
				}
				if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return o, nil
			},
		)

		created, err := m.CreateServiceOrder(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Number != 7 {
			t.Fatalf("expected number 7, got %d", created.Number)
		}
	})

	t.Run("store failure keeps the draft for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m, scratch, orders, counter := newManager(ctrl)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil).AnyTimes()

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, err := m.Apply(context.Background(), "sess-1", DraftPatch{CustomerID: strPtr("cust-1")}); err != nil {
			t.Fatalf("apply: %v", err)
		}

		counter.EXPECT().Increment(gomock.Any()).Return(int64(8), nil)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.ServiceOrder{}, errors.New("put failed"))

		_, err := m.CreateServiceOrder(context.Background(), "sess-1")
		if !errors.Is(err, ErrCommitFailed) {
			t.Fatalf("expected ErrCommitFailed, got %v", err)
		}

		d, err := m.Current(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("expected draft preserved, got %v", err)
		}
		if d.Order.CustomerID != "cust-1" {
			t.Fatalf("expected draft content intact, got %+v", d.Order)
		}
	})

	t.Run("sequence failure aborts before the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m, scratch, _, counter := newManager(ctrl)

		scratch.EXPECT().Get(gomock.Any(), "draft:sess-1").Return("", false, nil)
		scratch.EXPECT().Set(gomock.Any(), "draft:sess-1", gomock.Any()).Return(nil)

		if _, err := m.Open(context.Background(), "sess-1", ""); err != nil {
			t.Fatalf("open: %v", err)
		}

		counter.EXPECT().Increment(gomock.Any()).Return(int64(0), errors.New("throttled"))

		_, err := m.CreateServiceOrder(context.Background(), "sess-1")
		if !errors.Is(err, ErrSequenceUnavailable) {
			t.Fatalf("expected ErrSequenceUnavailable, got %v", err)
		}
	})
}

func TestDraftManager_UpdateServiceOrder(t *testing.T) {
	t.Run("writes back to the existing record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		m := NewDraftManager(orders, scratch, nil)

		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1", Number: 12}, nil)

		if _, err := m.Open(context.Background(), "sess-1", "os-1"); err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, err := m.Apply(context.Background(), "sess-1", DraftPatch{TechnicalFeedback: strPtr("battery replaced")}); err != nil {
			t.Fatalf("apply: %v", err)
		}

		orders.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.ServiceOrder{})).DoAndReturn(
			func(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.ID != "os-1" || o.TechnicalFeedback != "battery replaced" {
					t.Fatalf("unexpected order: %+v", o)
				}
				return o, nil
			},
		)

		updated, err := m.UpdateServiceOrder(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.TechnicalFeedback != "battery replaced" {
			t.Fatalf("unexpected result: %+v", updated)
		}
	})

	t.Run("record vanished mid-edit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		scratch := mock_interfaces.NewMockIScratchStore(ctrl)
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		m := NewDraftManager(orders, scratch, nil)

		scratch.EXPECT().Remove(gomock.Any(), "draft:sess-1").Return(nil)
		orders.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)

		if _, err := m.Open(context.Background(), "sess-1", "os-1"); err != nil {
			t.Fatalf("open: %v", err)
		}

		orders.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.ServiceOrder{}, nil)

		_, err := m.UpdateServiceOrder(context.Background(), "sess-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}
