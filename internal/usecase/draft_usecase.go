package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrOrderNotFound    = errors.New("service order not found")
	ErrNoActiveDraft    = errors.New("no active draft for session")

	// ErrCommitFailed wraps a failed durable write during order creation.
	// The draft stays intact for an explicit retry; the order number issued
	// before the write is accepted as burned.
	ErrCommitFailed = errors.New("service order commit failed")
)

// DraftPatch replaces top-level draft fields. Each non-nil field is a full
// replacement; collections are swapped whole, never deep-merged, because
// partial merges of mutable record arrays are a known source of stale-index
// bugs.
type DraftPatch struct {
	CustomerID            *string
	TechnicianID          *string
	Status                *entities.OrderStatus
	StartDate             *time.Time
	DeliveryEstimate      *time.Time
	ClearDeliveryEstimate bool
	WarrantyID            *string
	WarrantyDays          *int
	Equipments            *[]entities.Equipment
	Checklists            *[]entities.Checklist
	Services              *[]entities.ServiceLineItem
	Products              *[]entities.ProductLineItem
	TechnicalFeedback     *string
	Discount              *float64
}

// DraftManager owns the in-progress, not-yet-committed representation of a
// service order across the wizard's steps.
//
// Entry modes:
//   - edit (order id supplied): any scratch draft for the session is cleared
//     first — an existing record must never be shadowed by a stale unrelated
//     draft — and the working copy is loaded from the durable store.
//   - create: a scratch draft is recovered when present and well formed;
//     corrupt data is discarded, never repaired, and the default template is
//     used instead.
//
// Drafts are scoped per session handle, so concurrent wizards (two browser
// tabs) cannot clobber each other's scratch state.
type DraftManager struct {
	mu       sync.Mutex
	sessions map[string]entities.Draft

	orders   interfaces.IServiceOrderRepository
	scratch  interfaces.IScratchStore
	sequence ISequenceUseCase

	// autosaveObserver, when set, receives scratch write failures. Autosave
	// is best effort and never blocks or fails the calling operation.
	autosaveObserver func(error)
}

func NewDraftManager(orders interfaces.IServiceOrderRepository, scratch interfaces.IScratchStore, sequence ISequenceUseCase) *DraftManager {
	return &DraftManager{
		sessions: make(map[string]entities.Draft),
		orders:   orders,
		scratch:  scratch,
		sequence: sequence,
	}
}

// SetAutosaveObserver registers an optional listener for autosave failures.
func (m *DraftManager) SetAutosaveObserver(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autosaveObserver = fn
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

// Open starts a wizard session. With an order id it enters edit mode,
// otherwise create mode with local-draft recovery.
func (m *DraftManager) Open(ctx context.Context, sessionID, orderID string) (entities.Draft, error) {
	if sessionID == "" {
		return entities.Draft{}, ErrInvalidSessionID
	}

	if orderID != "" {
		return m.openEdit(ctx, sessionID, orderID)
	}
	return m.openCreate(ctx, sessionID)
}

func (m *DraftManager) openEdit(ctx context.Context, sessionID, orderID string) (entities.Draft, error) {
	// Clear scratch before anything else: even if the durable read fails we
	// must not leave an unrelated draft around to shadow the record later.
	if err := m.scratch.Remove(ctx, draftKey(sessionID)); err != nil {
		log.Printf("[draft][usecase] scratch clear on edit failed session=%s err=%v", sessionID, err)
	}

	order, err := m.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Draft{}, err
	}
	if order.ID == "" {
		return entities.Draft{}, ErrOrderNotFound
	}

	d := entities.DraftFromOrder(order, time.Now().UTC())
	m.put(sessionID, d)
	log.Printf("[draft][usecase] edit session opened session=%s order=%s", sessionID, orderID)
	return d, nil
}

func (m *DraftManager) openCreate(ctx context.Context, sessionID string) (entities.Draft, error) {
	key := draftKey(sessionID)

	if raw, ok, err := m.scratch.Get(ctx, key); err == nil && ok {
		d, decErr := entities.DecodeDraft(raw)
		if decErr == nil && !d.EditMode() {
			m.put(sessionID, d)
			log.Printf("[draft][usecase] draft recovered session=%s last_modified=%s", sessionID, d.LastModified.Format(time.RFC3339))
			return d, nil
		}
		// Corrupt or stale edit-mode leftovers: discard, never repair.
		if rmErr := m.scratch.Remove(ctx, key); rmErr != nil {
			log.Printf("[draft][usecase] scratch self-heal failed session=%s err=%v", sessionID, rmErr)
		}
		log.Printf("[draft][usecase] scratch draft discarded session=%s reason=%v", sessionID, decErr)
	}

	d := entities.NewDraftTemplate(time.Now().UTC())
	m.put(sessionID, d)
	m.SaveDraft(ctx, sessionID)
	return d, nil
}

// Current returns the session's working draft, recovering a create-mode
// draft from scratch storage when the in-memory state was lost (e.g. a
// process restart).
func (m *DraftManager) Current(ctx context.Context, sessionID string) (entities.Draft, error) {
	if sessionID == "" {
		return entities.Draft{}, ErrInvalidSessionID
	}

	if d, ok := m.get(sessionID); ok {
		return d, nil
	}

	if raw, ok, err := m.scratch.Get(ctx, draftKey(sessionID)); err == nil && ok {
		if d, decErr := entities.DecodeDraft(raw); decErr == nil && !d.EditMode() {
			m.put(sessionID, d)
			return d, nil
		}
		if rmErr := m.scratch.Remove(ctx, draftKey(sessionID)); rmErr != nil {
			log.Printf("[draft][usecase] scratch self-heal failed session=%s err=%v", sessionID, rmErr)
		}
	}

	return entities.Draft{}, ErrNoActiveDraft
}

// Apply replaces the patched top-level fields, stamps lastModified and
// autosaves. Collection replacements rebind checklists so derived equipment
// indexes stay valid.
func (m *DraftManager) Apply(ctx context.Context, sessionID string, patch DraftPatch) (entities.Draft, error) {
	d, err := m.Current(ctx, sessionID)
	if err != nil {
		return entities.Draft{}, err
	}

	applyPatch(&d, patch)
	d.LastModified = time.Now().UTC()
	m.put(sessionID, d)
	m.SaveDraft(ctx, sessionID)
	return d, nil
}

// SetStep records the wizard position inside the draft so an interrupted
// session resumes where it left off.
func (m *DraftManager) SetStep(ctx context.Context, sessionID string, step entities.WizardStep) (entities.Draft, error) {
	d, err := m.Current(ctx, sessionID)
	if err != nil {
		return entities.Draft{}, err
	}

	d.CurrentStep = step
	d.LastModified = time.Now().UTC()
	m.put(sessionID, d)
	m.SaveDraft(ctx, sessionID)
	return d, nil
}

// SaveDraft writes the draft to scratch storage, best effort. Edit-mode
// drafts are never persisted locally: the durable store is the only source
// of truth once a record exists. Failures are reported to the observer,
// the key is cleared so no half-written value survives, and the caller is
// never blocked or failed.
func (m *DraftManager) SaveDraft(ctx context.Context, sessionID string) {
	d, ok := m.get(sessionID)
	if !ok || d.EditMode() {
		return
	}

	raw, err := entities.EncodeDraft(d)
	if err != nil {
		m.observe(err)
		return
	}

	if err := m.scratch.Set(ctx, draftKey(sessionID), raw); err != nil {
		log.Printf("[draft][usecase] autosave failed session=%s err=%v", sessionID, err)
		if rmErr := m.scratch.Remove(ctx, draftKey(sessionID)); rmErr != nil {
			log.Printf("[draft][usecase] scratch self-heal failed session=%s err=%v", sessionID, rmErr)
		}
		m.observe(err)
	}
}

// Discard drops the session's draft from memory and scratch storage.
func (m *DraftManager) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	return m.scratch.Remove(ctx, draftKey(sessionID))
}

// CreateServiceOrder commits a create-mode draft: request a number, then
// write the new document. On failure the draft is left intact and the error
// is surfaced — never retried silently, since a silent rewrite risks
// duplicate submission. The caller clears the draft after success.
func (m *DraftManager) CreateServiceOrder(ctx context.Context, sessionID string) (entities.ServiceOrder, error) {
	d, err := m.Current(ctx, sessionID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	number, err := m.sequence.NextOrderNumber(ctx)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := time.Now().UTC()
	order := d.Order
	order.Normalize()
	order.RebindChecklists()
	order.ID = uuid.NewString()
	order.Number = number
	order.CreatedAt = now
	order.UpdatedAt = now

	created, err := m.orders.Create(ctx, order)
	if err != nil {
		log.Printf("[draft][usecase] commit failed session=%s number=%d err=%v", sessionID, number, err)
		return entities.ServiceOrder{}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	log.Printf("[draft][usecase] order committed session=%s id=%s number=%d", sessionID, created.ID, created.Number)
	return created, nil
}

// UpdateServiceOrder commits an edit-mode draft back to the durable record.
// The order number and creation stamp are immutable; the repository update
// never touches them.
func (m *DraftManager) UpdateServiceOrder(ctx context.Context, sessionID string) (entities.ServiceOrder, error) {
	d, err := m.Current(ctx, sessionID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	order := d.Order
	order.Normalize()
	order.RebindChecklists()
	order.ID = d.OrderID
	order.UpdatedAt = time.Now().UTC()

	updated, err := m.orders.Update(ctx, order)
	if err != nil {
		return entities.ServiceOrder{}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return updated, nil
}

func (m *DraftManager) get(sessionID string) (entities.Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.sessions[sessionID]
	return d, ok
}

func (m *DraftManager) put(sessionID string, d entities.Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = d
}

func (m *DraftManager) observe(err error) {
	m.mu.Lock()
	fn := m.autosaveObserver
	m.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func applyPatch(d *entities.Draft, patch DraftPatch) {
	if patch.CustomerID != nil {
		d.Order.CustomerID = *patch.CustomerID
	}
	if patch.TechnicianID != nil {
		d.Order.TechnicianID = *patch.TechnicianID
	}
	if patch.Status != nil {
		d.Order.Status = *patch.Status
	}
	if patch.StartDate != nil {
		d.Order.StartDate = *patch.StartDate
	}
	if patch.ClearDeliveryEstimate {
		d.Order.DeliveryEstimate = nil
	} else if patch.DeliveryEstimate != nil {
		est := *patch.DeliveryEstimate
		d.Order.DeliveryEstimate = &est
	}
	if patch.WarrantyID != nil {
		d.Order.WarrantyID = *patch.WarrantyID
	}
	if patch.WarrantyDays != nil {
		d.Order.WarrantyDays = *patch.WarrantyDays
	}
	if patch.Equipments != nil {
		d.Order.ReplaceEquipments(*patch.Equipments)
	}
	if patch.Checklists != nil {
		d.Order.ReplaceChecklists(*patch.Checklists)
	}
	if patch.Services != nil {
		d.Order.Services = *patch.Services
	}
	if patch.Products != nil {
		d.Order.Products = *patch.Products
	}
	if patch.TechnicalFeedback != nil {
		d.Order.TechnicalFeedback = *patch.TechnicalFeedback
	}
	if patch.Discount != nil {
		d.Order.Discount = *patch.Discount
	}
}
