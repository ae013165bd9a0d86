// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/astronote/campaign-console/internal/status"
)

// Error codes emitted by the campaigns backend on a rejected enqueue.
const (
	CodeInvalidStatus         = "INVALID_STATUS"
	CodeEnqueueConflictStatus = "ENQUEUE_CONFLICT_STATUS"
	CodePrismaSchemaDrift     = "PRISMA_SCHEMA_DRIFT"
	CodeQueueUnavailable      = "QUEUE_UNAVAILABLE"
	CodeNoRecipients          = "NO_RECIPIENTS"
	CodeInsufficientCredits   = "INSUFFICIENT_CREDITS"
	CodeSubscriptionRequired  = "SUBSCRIPTION_REQUIRED"
	CodeInactiveSubscription  = "INACTIVE_SUBSCRIPTION"
	CodeNoMessageText         = "NO_MESSAGE_TEXT"
	CodeEnqueueFailed         = "ENQUEUE_FAILED"
)

// FailedGuidance is the fixed copy shown for campaigns in the failed state.
// Retrying a failed campaign is not supported; users create a new one.
const FailedGuidance = "Campaign failed. Create a new campaign or contact support."

// FallbackMessage is used when the backend provides no message at all.
const FallbackMessage = "Failed to enqueue campaign"

// EnqueueError is the structured error body of a rejected enqueue request:
// {code, message, currentStatus?}.
type EnqueueError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CurrentStatus string `json:"currentStatus,omitempty"`
	HTTPStatus    int    `json:"-"`
}

func (e *EnqueueError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("enqueue rejected (%s): %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

// NewEnqueueError is a helper constructor.
func NewEnqueueError(code, message, currentStatus string) *EnqueueError {
	return &EnqueueError{Code: code, Message: message, CurrentStatus: currentStatus}
}

var invalidStatusPattern = regexp.MustCompile(`(?i)invalid_status:([a-z_]+)`)

// statusFromMessage recovers the campaign status embedded in a legacy
// unstructured error message ("invalid_status:<status>"). Kept in one place
// so it can be deleted once the backend always sends currentStatus.
func statusFromMessage(message string) string {
	m := invalidStatusPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return m[1]
}

// Describe classifies a failed send attempt into a stable user-facing
// message. The conflict-status codes branch again on the concurrently
// observed campaign status; the same top-level code means different things
// depending on where the campaign actually is.
func Describe(err error) string {
	if err == nil {
		return FallbackMessage
	}

	var ee *EnqueueError
	if !errors.As(err, &ee) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return FallbackMessage
	}

	raw := ee.Message
	if raw == "" {
		raw = FallbackMessage
	}
	current := ee.CurrentStatus
	if current == "" {
		current = statusFromMessage(ee.Message)
	}

	switch ee.Code {
	case CodeInvalidStatus, CodeEnqueueConflictStatus:
		switch status.Status(current) {
		case status.Failed:
			return FailedGuidance
		case status.Sending:
			return "Campaign is already sending. Check status for progress."
		case status.Completed:
			return "Campaign already completed. Create a new campaign to send again."
		case status.Scheduled:
			return `Campaign is scheduled. Use "Enqueue now" to send immediately or edit the schedule.`
		}
		if current != "" {
			return fmt.Sprintf("Campaign cannot be sent in its current state (%s).", current)
		}
		return "Campaign cannot be sent in its current state."
	case CodePrismaSchemaDrift:
		return "Service temporarily unavailable while we sync billing data. Please retry shortly."
	case CodeQueueUnavailable:
		return "Messaging queue unavailable. Please try again soon."
	case CodeNoRecipients:
		return "Campaign has no eligible recipients."
	case CodeInsufficientCredits:
		return "Not enough free allowance or credits. Please purchase more credits or upgrade your subscription."
	case CodeSubscriptionRequired, CodeInactiveSubscription:
		return "Active subscription required to send campaigns."
	case CodeNoMessageText:
		return "Campaign is missing message text."
	case CodeEnqueueFailed:
		return "Failed to enqueue campaign. Please retry."
	}

	return raw
}
