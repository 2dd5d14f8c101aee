package entities

import (
	"encoding/json"
	"errors"
	"time"
)

// DefaultWarrantyDays is applied when an order arrives without a warranty
// period.
const DefaultWarrantyDays = 90

// DraftSchemaVersion guards the scratch-storage layout. A persisted draft
// with any other version is treated as corrupt and discarded; there is no
// forward-compatible partial parsing.
const DraftSchemaVersion = 1

// ErrDraftCorrupt means scratch data could not be decoded into a usable
// draft. Recovery is always discard-and-restart, never partial repair, and
// the condition is never surfaced to the end user.
var ErrDraftCorrupt = errors.New("draft data corrupt")

// WizardStep indexes the fixed creation-wizard sequence.
type WizardStep int

const (
	StepBasics WizardStep = iota
	StepEquipment
	StepServices
	StepProducts
	StepSummary
)

var wizardStepNames = map[WizardStep]string{
	StepBasics:    "basics",
	StepEquipment: "equipment",
	StepServices:  "services",
	StepProducts:  "products",
	StepSummary:   "summary",
}

func (s WizardStep) String() string {
	if name, ok := wizardStepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s WizardStep) First() bool { return s == StepBasics }
func (s WizardStep) Last() bool  { return s == StepSummary }

// Draft is the transient working copy of a service order under composition.
//
// Scratch-storage model (Redis, best effort):
//   - key: draft:<session id>
//   - value: JSON of this struct; dates travel as RFC 3339 strings.
//
// A draft carrying OrderID belongs to an existing committed order being
// edited; those never touch scratch storage — the durable store is the only
// source of truth once a record exists.
type Draft struct {
	SchemaVersion int          `json:"schema_version"`
	OrderID       string       `json:"order_id,omitempty"`
	CurrentStep   WizardStep   `json:"current_step"`
	Order         ServiceOrder `json:"order"`
	LastModified  time.Time    `json:"last_modified"`
}

func (d Draft) EditMode() bool {
	return d.OrderID != ""
}

// NewDraftTemplate is the starting point for a fresh create-mode wizard: one
// blank equipment entry, no line items, open status, default warranty.
func NewDraftTemplate(now time.Time) Draft {
	order := ServiceOrder{
		Status:       OrderStatusOpen,
		StartDate:    now,
		WarrantyDays: DefaultWarrantyDays,
		Equipments:   []Equipment{NewEquipment()},
		Checklists:   []Checklist{},
		Services:     []ServiceLineItem{},
		Products:     []ProductLineItem{},
	}
	return Draft{
		SchemaVersion: DraftSchemaVersion,
		CurrentStep:   StepBasics,
		Order:         order,
		LastModified:  now,
	}
}

// DraftFromOrder builds the edit-mode working copy of an existing committed
// order, normalizing absent optional fields so wizard steps never see nil
// collections.
func DraftFromOrder(order ServiceOrder, now time.Time) Draft {
	order.Normalize()
	order.RebindChecklists()
	return Draft{
		SchemaVersion: DraftSchemaVersion,
		OrderID:       order.ID,
		CurrentStep:   StepBasics,
		Order:         order,
		LastModified:  now,
	}
}

// EncodeDraft serializes a draft for scratch storage.
func EncodeDraft(d Draft) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeDraft parses a persisted draft. Anything short of a fully valid
// current-version draft with its equipment collection present is
// ErrDraftCorrupt: the caller discards and starts from the template.
func DecodeDraft(raw string) (Draft, error) {
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}, ErrDraftCorrupt
	}
	if d.SchemaVersion != DraftSchemaVersion {
		return Draft{}, ErrDraftCorrupt
	}
	if d.Order.Equipments == nil {
		return Draft{}, ErrDraftCorrupt
	}
	if d.CurrentStep < StepBasics || d.CurrentStep > StepSummary {
		return Draft{}, ErrDraftCorrupt
	}
	d.Order.Normalize()
	d.Order.RebindChecklists()
	return d, nil
}
