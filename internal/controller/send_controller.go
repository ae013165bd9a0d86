// internal/controller/send_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/astronote/campaign-console/internal/errors"
	"github.com/astronote/campaign-console/internal/model"
	"github.com/astronote/campaign-console/internal/service"
)

// SendController exposes the send intent/confirm protocol over HTTP for the
// console frontend.
type SendController struct {
	SendService *service.SendService
}

// blockedResponse is the body for precondition failures. These are no-ops,
// not errors: nothing reached the backend.
type blockedResponse struct {
	Blocked   bool   `json:"blocked"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason,omitempty"`
	Status    string `json:"status,omitempty"`
	CTATarget string `json:"cta_target,omitempty"`
}

// RequestSend opens the confirmation phase for a campaign.
func (c *SendController) RequestSend(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	intent, err := c.SendService.RequestSend(r.Context(), campaignID)
	if err != nil {
		writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

// ConfirmSend executes a confirmed send. The response carries the attempt
// outcome either way; a failed enqueue is a 200 with the classified error,
// matching how the console surfaces it inline.
func (c *SendController) ConfirmSend(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	var body struct {
		ConfirmToken string `json:"confirm_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ConfirmToken == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	attempt, err := c.SendService.ConfirmSend(r.Context(), campaignID, body.ConfirmToken)
	if err != nil {
		writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

// CancelSend dismisses an open confirmation. Always a no-op on the backend.
func (c *SendController) CancelSend(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	var body struct {
		ConfirmToken string `json:"confirm_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ConfirmToken == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	c.SendService.CancelSend(campaignID, body.ConfirmToken)
	w.WriteHeader(http.StatusNoContent)
}

// attemptResponse wraps the latest attempt with the current flow phase, so
// the console can render idle/confirming states before any attempt exists.
type attemptResponse struct {
	Phase   model.Phase        `json:"phase"`
	Attempt *model.SendAttempt `json:"attempt,omitempty"`
}

// GetAttempt returns the send flow phase and latest attempt for a campaign.
func (c *SendController) GetAttempt(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	writeJSON(w, http.StatusOK, attemptResponse{
		Phase:   c.SendService.Phase(campaignID),
		Attempt: c.SendService.Attempt(campaignID),
	})
}

// GetActions returns action availability for a campaign.
func (c *SendController) GetActions(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	actions, err := c.SendService.Actions(r.Context(), campaignID)
	if err != nil {
		writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actions)
}

func writeSendError(w http.ResponseWriter, err error) {
	var gateErr *service.GateBlockedError
	if errors.As(err, &gateErr) {
		writeJSON(w, http.StatusForbidden, blockedResponse{
			Blocked:   true,
			Kind:      "billing",
			Reason:    gateErr.State.Reason,
			CTATarget: gateErr.State.CTATarget,
		})
		return
	}

	if errors.Is(err, service.ErrSendInFlight) {
		writeJSON(w, http.StatusConflict, blockedResponse{
			Blocked: true,
			Kind:    "in_flight",
			Reason:  "Sending campaign...",
		})
		return
	}

	var statusErr *service.StatusBlockedError
	if errors.As(err, &statusErr) {
		writeJSON(w, http.StatusConflict, blockedResponse{
			Blocked: true,
			Kind:    "status",
			Reason:  "Campaign cannot be sent in its current state",
			Status:  string(statusErr.Status),
		})
		return
	}

	if errors.Is(err, service.ErrConfirmExpired) {
		http.Error(w, "confirmation expired", http.StatusGone)
		return
	}

	var ee *appErrors.EnqueueError
	if errors.As(err, &ee) {
		// Backend rejected a read (campaign/subscription fetch); mirror it.
		code := ee.HTTPStatus
		if code == 0 {
			code = http.StatusBadGateway
		}
		writeJSON(w, code, ee)
		return
	}

	http.Error(w, err.Error(), http.StatusBadGateway)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
