package usecase

import (
	"context"
	"errors"
	"fmt"

	"sisgenius/internal/domain/entities"
)

// ErrAtFinalStep is returned by Advance on the summary step; finishing the
// wizard goes through Commit.
var ErrAtFinalStep = errors.New("wizard already at final step")

// StepIncompleteError reports a failed step validity gate. It is purely
// advisory: nothing about the draft changes when it is returned.
type StepIncompleteError struct {
	Step   entities.WizardStep
	Reason string
}

func (e *StepIncompleteError) Error() string {
	return fmt.Sprintf("step %s incomplete: %s", e.Step, e.Reason)
}

// IWizardUseCase sequences the fixed wizard steps over a session's draft.

type IWizardUseCase interface {
	Open(ctx context.Context, sessionID, orderID string) (entities.Draft, error)
	Current(ctx context.Context, sessionID string) (entities.Draft, error)
	UpdateDraft(ctx context.Context, sessionID string, patch DraftPatch) (entities.Draft, error)
	Advance(ctx context.Context, sessionID string) (entities.Draft, error)
	Retreat(ctx context.Context, sessionID string) (entities.Draft, error)
	Commit(ctx context.Context, sessionID string) (entities.ServiceOrder, error)
	Discard(ctx context.Context, sessionID string) error
}

// WizardUseCase holds no draft data of its own: it reads the step index off
// the draft and delegates every mutation to the DraftManager. It is also the
// only caller of the manager's commit operations.
type WizardUseCase struct {
	drafts *DraftManager
}

var _ IWizardUseCase = (*WizardUseCase)(nil)

func NewWizardUseCase(drafts *DraftManager) *WizardUseCase {
	return &WizardUseCase{drafts: drafts}
}

func (u *WizardUseCase) Open(ctx context.Context, sessionID, orderID string) (entities.Draft, error) {
	return u.drafts.Open(ctx, sessionID, orderID)
}

func (u *WizardUseCase) Current(ctx context.Context, sessionID string) (entities.Draft, error) {
	return u.drafts.Current(ctx, sessionID)
}

func (u *WizardUseCase) UpdateDraft(ctx context.Context, sessionID string, patch DraftPatch) (entities.Draft, error) {
	return u.drafts.Apply(ctx, sessionID, patch)
}

// Advance moves to the next step if the current one passes its validity
// gate. An invalid step rejects with a StepIncompleteError carrying a
// human-readable reason and leaves the draft untouched.
func (u *WizardUseCase) Advance(ctx context.Context, sessionID string) (entities.Draft, error) {
	d, err := u.drafts.Current(ctx, sessionID)
	if err != nil {
		return entities.Draft{}, err
	}
	if d.CurrentStep.Last() {
		return entities.Draft{}, ErrAtFinalStep
	}
	if inc := validateStep(d, d.CurrentStep); inc != nil {
		return entities.Draft{}, inc
	}
	return u.drafts.SetStep(ctx, sessionID, d.CurrentStep+1)
}

// Retreat is always allowed and never discards data.
func (u *WizardUseCase) Retreat(ctx context.Context, sessionID string) (entities.Draft, error) {
	d, err := u.drafts.Current(ctx, sessionID)
	if err != nil {
		return entities.Draft{}, err
	}
	if d.CurrentStep.First() {
		return d, nil
	}
	return u.drafts.SetStep(ctx, sessionID, d.CurrentStep-1)
}

// Commit finishes the wizard from the summary step. All gated steps are
// revalidated first, then create-mode drafts go through number issuance plus
// document creation and are cleared on success; edit-mode drafts write back
// to the existing record.
func (u *WizardUseCase) Commit(ctx context.Context, sessionID string) (entities.ServiceOrder, error) {
	d, err := u.drafts.Current(ctx, sessionID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if !d.CurrentStep.Last() {
		return entities.ServiceOrder{}, &StepIncompleteError{Step: d.CurrentStep, Reason: "review the summary before finishing"}
	}
	for step := entities.StepBasics; step < entities.StepSummary; step++ {
		if inc := validateStep(d, step); inc != nil {
			return entities.ServiceOrder{}, inc
		}
	}

	if d.EditMode() {
		return u.drafts.UpdateServiceOrder(ctx, sessionID)
	}

	order, err := u.drafts.CreateServiceOrder(ctx, sessionID)
	if err != nil {
		// Draft stays intact (memory and scratch) so the user can retry.
		return entities.ServiceOrder{}, err
	}

	if err := u.drafts.Discard(ctx, sessionID); err != nil {
		// The order is committed; a failed scratch cleanup must not undo it.
		return order, nil
	}
	return order, nil
}

func (u *WizardUseCase) Discard(ctx context.Context, sessionID string) error {
	return u.drafts.Discard(ctx, sessionID)
}

// validateStep implements the per-step validity gates. Summary has no gate
// of its own; it is reachable only after every other step passed.
func validateStep(d entities.Draft, step entities.WizardStep) *StepIncompleteError {
	switch step {
	case entities.StepBasics:
		if d.Order.CustomerID == "" {
			return &StepIncompleteError{Step: step, Reason: "select a customer"}
		}
		if d.Order.TechnicianID == "" {
			return &StepIncompleteError{Step: step, Reason: "select a technician"}
		}
	case entities.StepEquipment:
		if len(d.Order.Equipments) == 0 {
			return &StepIncompleteError{Step: step, Reason: "add at least one equipment"}
		}
		for _, eq := range d.Order.Equipments {
			if eq.Brand == "" || eq.Model == "" {
				return &StepIncompleteError{Step: step, Reason: "inform brand and model for every equipment"}
			}
		}
	case entities.StepServices, entities.StepProducts:
		// Both lists may legitimately be empty.
	}
	return nil
}
