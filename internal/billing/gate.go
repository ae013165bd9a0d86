// internal/billing/gate.go
package billing

import "github.com/astronote/campaign-console/internal/model"

// DefaultBlockedReason is shown when the billing collaborator gives no
// specific reason for the block.
const DefaultBlockedReason = "Active subscription required to send campaigns"

// DefaultCTATarget is the billing page offered to resolve the block.
const DefaultCTATarget = "/app/billing"

// GateState is the derived send permission. Reason and CTATarget are set
// only when SubscriptionActive is false.
type GateState struct {
	SubscriptionActive bool   `json:"subscription_active"`
	Reason             string `json:"reason,omitempty"`
	CTATarget          string `json:"cta_target,omitempty"`
}

// Gate derives send permission from subscription state. Pure; safe to
// recompute on every poll. A nil or zero Gate uses the defaults.
type Gate struct {
	CTATarget string
}

// Evaluate derives the gate state for the given subscription summary.
// It is a hard precondition: an inactive subscription disables sending
// regardless of campaign status.
func (g *Gate) Evaluate(sub model.Subscription) GateState {
	if sub.Active {
		return GateState{SubscriptionActive: true}
	}

	reason := DefaultBlockedReason
	if sub.Reason != nil && *sub.Reason != "" {
		reason = *sub.Reason
	}
	cta := DefaultCTATarget
	if g != nil && g.CTATarget != "" {
		cta = g.CTATarget
	}
	return GateState{
		SubscriptionActive: false,
		Reason:             reason,
		CTATarget:          cta,
	}
}
