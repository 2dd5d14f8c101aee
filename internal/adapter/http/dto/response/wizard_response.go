package response

import (
	"time"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase"
)

// DraftResponse is the wizard's working state as seen by the UI: the step
// position plus the full order working copy with computed totals.
type DraftResponse struct {
	Mode         string               `json:"mode"`
	Step         string               `json:"step"`
	StepIndex    int                  `json:"step_index"`
	Order        ServiceOrderResponse `json:"order"`
	LastModified time.Time            `json:"last_modified"`
}

func FromDraft(d entities.Draft) DraftResponse {
	mode := "create"
	if d.EditMode() {
		mode = "edit"
	}
	return DraftResponse{
		Mode:         mode,
		Step:         d.CurrentStep.String(),
		StepIndex:    int(d.CurrentStep),
		Order:        FromServiceOrder(d.Order),
		LastModified: d.LastModified,
	}
}

type NotificationOfferResponse struct {
	Available   bool   `json:"available"`
	Destination string `json:"destination,omitempty"`
	Message     string `json:"message,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func FromNotificationOffer(offer usecase.NotificationOffer) NotificationOfferResponse {
	return NotificationOfferResponse(offer)
}

// StatusChangeResponse pairs the post-write order document with the
// notification offer so callers reconcile their list views from the write
// result and decide about the side effect in one round trip.
type StatusChangeResponse struct {
	Order        ServiceOrderResponse      `json:"order"`
	Notification NotificationOfferResponse `json:"notification"`
}

type BackfillResponse struct {
	Assigned   int   `json:"assigned"`
	MaxNumber  int64 `json:"max_number"`
	NewCounter int64 `json:"new_counter"`
}

func FromBackfillResult(r usecase.BackfillResult) BackfillResponse {
	return BackfillResponse(r)
}
