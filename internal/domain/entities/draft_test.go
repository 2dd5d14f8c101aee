package entities

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewDraftTemplate(t *testing.T) {
	now := time.Now().UTC()
	d := NewDraftTemplate(now)

	if d.SchemaVersion != DraftSchemaVersion {
		t.Fatalf("expected schema version %d, got %d", DraftSchemaVersion, d.SchemaVersion)
	}
	if d.EditMode() {
		t.Fatalf("expected create mode")
	}
	if d.CurrentStep != StepBasics {
		t.Fatalf("expected first step, got %s", d.CurrentStep)
	}
	if len(d.Order.Equipments) != 1 || d.Order.Equipments[0].ID == "" {
		t.Fatalf("expected one blank equipment with id, got %+v", d.Order.Equipments)
	}
	if d.Order.Status != OrderStatusOpen {
		t.Fatalf("expected open status, got %s", d.Order.Status)
	}
	if d.Order.WarrantyDays != DefaultWarrantyDays {
		t.Fatalf("expected default warranty, got %d", d.Order.WarrantyDays)
	}
	if !d.Order.StartDate.Equal(now) || !d.LastModified.Equal(now) {
		t.Fatalf("expected timestamps set to now")
	}
}

func TestDraftFromOrder(t *testing.T) {
	now := time.Now().UTC()
	order := ServiceOrder{
		ID:         "os-1",
		Equipments: []Equipment{{ID: "eq-a"}},
		Checklists: []Checklist{{EquipmentID: "eq-gone"}},
	}

	d := DraftFromOrder(order, now)

	if !d.EditMode() || d.OrderID != "os-1" {
		t.Fatalf("expected edit mode for os-1, got %+v", d)
	}
	if d.CurrentStep != StepBasics {
		t.Fatalf("expected first step, got %s", d.CurrentStep)
	}
	if len(d.Order.Checklists) != 0 {
		t.Fatalf("expected orphaned checklist dropped, got %+v", d.Order.Checklists)
	}
	if d.Order.Services == nil || d.Order.Products == nil {
		t.Fatalf("expected normalized collections")
	}
}

func TestDraftCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		d := NewDraftTemplate(now)
		d.CurrentStep = StepServices
		d.Order.CustomerID = "cust-1"
		d.Order.Services = []ServiceLineItem{{ServiceID: "svc-1", Name: "diagnostics", UnitPrice: 80, Quantity: 1}}

		raw, err := EncodeDraft(d)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}

		got, err := DecodeDraft(raw)
		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if got.CurrentStep != StepServices || got.Order.CustomerID != "cust-1" {
			t.Fatalf("unexpected draft: %+v", got)
		}
		if len(got.Order.Services) != 1 || got.Order.Services[0].UnitPrice != 80 {
			t.Fatalf("unexpected services: %+v", got.Order.Services)
		}
		if !got.LastModified.Equal(now) {
			t.Fatalf("expected last modified preserved, got %v", got.LastModified)
		}
	})

	t.Run("corrupt payloads", func(t *testing.T) {
		cases := []struct {
			name string
			raw  string
		}{
			{name: "not json", raw: "not-json"},
			{name: "empty", raw: ""},
			{name: "wrong schema version", raw: `{"schema_version":2,"current_step":0,"order":{"equipments":[]}}`},
			{name: "missing equipments", raw: `{"schema_version":1,"current_step":0,"order":{}}`},
			{name: "step below range", raw: `{"schema_version":1,"current_step":-1,"order":{"equipments":[]}}`},
			{name: "step beyond range", raw: `{"schema_version":1,"current_step":9,"order":{"equipments":[]}}`},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := DecodeDraft(tc.raw); !errors.Is(err, ErrDraftCorrupt) {
					t.Fatalf("expected ErrDraftCorrupt, got %v", err)
				}
			})
		}
	})

	t.Run("decode normalizes and rebinds", func(t *testing.T) {
		raw := `{"schema_version":1,"current_step":1,"order":{"equipments":[{"id":"eq-a"}],"checklists":[{"equipment_id":"eq-gone"}]}}`
		d, err := DecodeDraft(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(d.Order.Checklists) != 0 {
			t.Fatalf("expected orphaned checklist dropped, got %+v", d.Order.Checklists)
		}
		if d.Order.Status != OrderStatusOpen {
			t.Fatalf("expected status normalized to open, got %s", d.Order.Status)
		}
	})
}

func TestWizardStepNames(t *testing.T) {
	want := map[WizardStep]string{
		StepBasics:    "basics",
		StepEquipment: "equipment",
		StepServices:  "services",
		StepProducts:  "products",
		StepSummary:   "summary",
	}
	for step, name := range want {
		if step.String() != name {
			t.Fatalf("expected %q, got %q", name, step.String())
		}
	}
	if WizardStep(42).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range step")
	}
	if !StepBasics.First() || StepSummary.First() {
		t.Fatalf("First() wrong")
	}
	if !StepSummary.Last() || StepBasics.Last() {
		t.Fatalf("Last() wrong")
	}
}

func TestDraftEditModeNeverMatchesTemplate(t *testing.T) {
	d := NewDraftTemplate(time.Now().UTC())
	for i := 0; i < 3; i++ {
		d.OrderID = fmt.Sprintf("os-%d", i)
		if !d.EditMode() {
			t.Fatalf("expected edit mode with order id set")
		}
	}
	d.OrderID = ""
	if d.EditMode() {
		t.Fatalf("expected create mode with empty order id")
	}
}
