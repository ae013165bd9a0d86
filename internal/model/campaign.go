// internal/model/campaign.go
package model

import "github.com/astronote/campaign-console/internal/status"

// Campaign is the backend-owned view consumed by the send orchestration
// layer. Read-only here: status is refreshed from the backend, never
// mutated locally after an enqueue.
type Campaign struct {
	ID               string        `json:"id"`
	Status           status.Status `json:"status"`
	TotalRecipients  int           `json:"total"`
	LastEnqueueError *string       `json:"lastEnqueueError,omitempty"`
}

// Subscription is the billing collaborator's summary of the tenant's plan.
type Subscription struct {
	Active   bool    `json:"active"`
	PlanType *string `json:"planType,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}
