// internal/model/attempt.go
package model

import (
	"fmt"

	appErrors "github.com/astronote/campaign-console/internal/errors"
)

// Phase is the lifecycle of a single send attempt. It is the one
// authoritative in-flight guard: a campaign with an attempt in PhaseInFlight
// rejects every further trigger until the result lands.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConfirming Phase = "confirming"
	PhaseInFlight   Phase = "in_flight"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// EnqueueResult is the backend's success payload for an enqueue request.
type EnqueueResult struct {
	Queued       int  `json:"queued"`
	EnqueuedJobs *int `json:"enqueuedJobs,omitempty"`
}

// Summary renders the result line shown after a successful enqueue, e.g.
// "Last enqueue: queued 5 messages (2 jobs enqueued)." The job count is
// omitted when the backend did not report one.
func (r EnqueueResult) Summary() string {
	noun := "messages"
	if r.Queued == 1 {
		noun = "message"
	}
	if r.EnqueuedJobs != nil {
		return fmt.Sprintf("Last enqueue: queued %d %s (%d jobs enqueued).", r.Queued, noun, *r.EnqueuedJobs)
	}
	return fmt.Sprintf("Last enqueue: queued %d %s.", r.Queued, noun)
}

// SendAttempt is the ephemeral record of one confirmed send action. A fresh
// idempotency key is generated per attempt and never reused; a failed
// attempt is never resumed, only replaced by a brand-new one.
type SendAttempt struct {
	CampaignID     string                  `json:"campaign_id"`
	IdempotencyKey string                  `json:"-"`
	Phase          Phase                   `json:"phase"`
	Result         *EnqueueResult          `json:"result,omitempty"`
	Err            *appErrors.EnqueueError `json:"error,omitempty"`
	UserMessage    string                  `json:"user_message,omitempty"`
}
