// internal/service/actions.go
package service

import (
	"context"
	"fmt"

	appErrors "github.com/astronote/campaign-console/internal/errors"
	"github.com/astronote/campaign-console/internal/model"
	"github.com/astronote/campaign-console/internal/status"
)

// CampaignActions is what the presentation layer needs to render the action
// row for a campaign: whether to show the send button, whether it is
// enabled, its label, and why it is blocked when it is.
type CampaignActions struct {
	CampaignID       string        `json:"campaign_id"`
	Status           status.Status `json:"status"`
	ShowSendAction   bool          `json:"show_send_action"`
	CanSend          bool          `json:"can_send"`
	CanEdit          bool          `json:"can_edit"`
	SendLabel        string        `json:"send_label"`
	BlockedReason    string        `json:"blocked_reason,omitempty"`
	CTATarget        string        `json:"cta_target,omitempty"`
	LastEnqueueError *string       `json:"last_enqueue_error,omitempty"`
}

// Actions derives action availability for a campaign. The billing gate wins
// over everything else; the send action is hidden entirely for terminal
// campaigns and merely disabled while an attempt is in flight.
func (s *SendService) Actions(ctx context.Context, campaignID string) (*CampaignActions, error) {
	sub, err := s.Backend.GetSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch subscription: %w", err)
	}
	gs := s.Gate.Evaluate(*sub)

	camp, err := s.Backend.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign %s: %w", campaignID, err)
	}

	inFlight := false
	if a := s.Attempt(campaignID); a != nil && a.Phase == model.PhaseInFlight {
		inFlight = true
	}

	actions := &CampaignActions{
		CampaignID:       camp.ID,
		Status:           camp.Status,
		ShowSendAction:   status.ShowSendAction(camp.Status),
		CanSend:          gs.SubscriptionActive && status.CanInitiateSend(camp.Status) && !inFlight,
		CanEdit:          status.CanEdit(camp.Status),
		SendLabel:        sendLabel(camp.Status, inFlight),
		LastEnqueueError: camp.LastEnqueueError,
	}

	switch {
	case !gs.SubscriptionActive:
		actions.BlockedReason = gs.Reason
		actions.CTATarget = gs.CTATarget
	case inFlight:
		actions.BlockedReason = "Sending campaign..."
	case !status.CanInitiateSend(camp.Status):
		actions.BlockedReason = statusBlockedReason(camp.Status)
	}

	return actions, nil
}

func sendLabel(s status.Status, inFlight bool) string {
	if inFlight || s == status.Sending {
		return "Sending..."
	}
	if s == status.Scheduled {
		return "Enqueue now"
	}
	return "Send Campaign"
}

func statusBlockedReason(s status.Status) string {
	switch s {
	case status.Sending:
		return "Campaign is already sending"
	case status.Completed:
		return "Campaign already completed"
	case status.Failed:
		return appErrors.FailedGuidance
	}
	return "Campaign cannot be sent in its current state"
}
