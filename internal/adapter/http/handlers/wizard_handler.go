package handlers

import (
	"context"
	"errors"
	"net/http"

	request "sisgenius/internal/adapter/http/dto/request"
	response "sisgenius/internal/adapter/http/dto/response"
	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase"
	"sisgenius/pkg"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the opaque wizard session handle. Each session owns
// its own draft; two tabs with different handles cannot clobber each other.
const SessionHeader = "X-Session-ID"

var (
	errMissingSession       = pkg.NewDomainErrorSimple("MISSING_SESSION", "Missing X-Session-ID header", http.StatusBadRequest)
	errInvalidWizardPayload = pkg.NewDomainErrorSimple("INVALID_WIZARD_INPUT", "Invalid wizard payload", http.StatusBadRequest)
)

// WizardHandler drives the service order creation/edit wizard over HTTP.

type WizardHandler struct {
	usecase usecase.IWizardUseCase
}

func NewWizardHandler(uc usecase.IWizardUseCase) *WizardHandler {
	return &WizardHandler{usecase: uc}
}

// Open enters the wizard: with order_id in edit mode (clearing any local
// draft), without one in create mode (recovering a saved draft if present).
func (h *WizardHandler) Open(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	var payload request.OpenWizardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWizardPayload.HTTPStatus, errInvalidWizardPayload.ToHTTPError())
		return
	}

	draft, err := h.usecase.Open(c.Request.Context(), sessionID, payload.OrderID)
	if err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(draft))
}

func (h *WizardHandler) Current(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	draft, err := h.usecase.Current(c.Request.Context(), sessionID)
	if err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(draft))
}

func (h *WizardHandler) UpdateDraft(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	var payload request.DraftPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidWizardPayload.HTTPStatus, errInvalidWizardPayload.ToHTTPError())
		return
	}

	draft, err := h.usecase.UpdateDraft(c.Request.Context(), sessionID, payload.ToPatch())
	if err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(draft))
}

func (h *WizardHandler) Advance(c *gin.Context) {
	h.step(c, h.usecase.Advance)
}

func (h *WizardHandler) Retreat(c *gin.Context) {
	h.step(c, h.usecase.Retreat)
}

func (h *WizardHandler) step(c *gin.Context, move func(ctx context.Context, sessionID string) (entities.Draft, error)) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	draft, err := move(c.Request.Context(), sessionID)
	if err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDraft(draft))
}

// Commit finishes the wizard from the summary step. New orders receive
// their number here; the draft is cleared only after the durable write
// succeeds, so a failed commit stays retryable.
func (h *WizardHandler) Commit(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	order, err := h.usecase.Commit(c.Request.Context(), sessionID)
	if err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromServiceOrder(order))
}

func (h *WizardHandler) Discard(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
		return
	}

	if err := h.usecase.Discard(c.Request.Context(), sessionID); err != nil {
		appErr := mapWizardError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapWizardError(err error) *pkg.DomainError {
	var incomplete *usecase.StepIncompleteError
	if errors.As(err, &incomplete) {
		return pkg.NewDomainError("STEP_INCOMPLETE", "Step incomplete", incomplete.Reason, http.StatusUnprocessableEntity)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSessionID):
		return pkg.NewDomainErrorSimple("INVALID_SESSION", "Invalid session id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNoActiveDraft):
		return pkg.NewDomainErrorSimple("NO_ACTIVE_DRAFT", "No active draft for this session", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAtFinalStep):
		return pkg.NewDomainErrorSimple("AT_FINAL_STEP", "Wizard already at final step", http.StatusConflict)
	case errors.Is(err, usecase.ErrSequenceUnavailable):
		return pkg.NewDomainErrorSimple("SEQUENCE_UNAVAILABLE", "Order number sequence unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrCommitFailed):
		return pkg.NewDomainErrorSimple("COMMIT_FAILED", "Commit failed; draft preserved for retry", http.StatusBadGateway)
	default:
		return pkg.NewDomainErrorSimple("INTERNAL_ERROR", "Internal error", http.StatusInternalServerError)
	}
}
