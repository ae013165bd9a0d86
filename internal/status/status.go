// internal/status/status.go
package status

// Status is the backend-authoritative campaign lifecycle state. This layer
// only reads it and derives local action availability; transitions are
// performed by the backend.
type Status string

const (
	Draft     Status = "draft"
	Scheduled Status = "scheduled"
	Sending   Status = "sending"
	Completed Status = "completed"
	Failed    Status = "failed"
)

var all = map[Status]bool{
	Draft:     true,
	Scheduled: true,
	Sending:   true,
	Completed: true,
	Failed:    true,
}

// Valid reports whether s is a known campaign status.
func Valid(s Status) bool {
	return all[s]
}

// CanInitiateSend reports whether a send attempt may be started for a
// campaign in this status.
func CanInitiateSend(s Status) bool {
	return s == Draft || s == Scheduled
}

// CanEdit reports whether campaign content may still be edited.
func CanEdit(s Status) bool {
	return s == Draft || s == Scheduled
}

// Terminal reports whether the campaign reached an end state. Failed
// campaigns have no retry path from this layer; a new campaign must be
// created instead.
func Terminal(s Status) bool {
	return s == Completed || s == Failed
}

// ShowSendAction reports whether the send action should be offered at all.
// Terminal campaigns hide it rather than disable it.
func ShowSendAction(s Status) bool {
	return !Terminal(s)
}

type transition struct {
	From Status
	To   Status
}

// allowedTransitions mirrors the backend's lifecycle. Consumed when
// reconciling status changes pushed by the backend, never enforced locally.
var allowedTransitions = map[transition]bool{
	{Draft, Scheduled}:   true, // schedule set
	{Draft, Sending}:     true, // enqueued immediately
	{Scheduled, Draft}:   true, // schedule removed
	{Scheduled, Sending}: true, // scheduler fired or "Enqueue now"
	{Sending, Completed}: true,
	{Sending, Failed}:    true,
}

// CanTransition reports whether the backend may legally move a campaign
// from one status to another.
func CanTransition(from, to Status) bool {
	return allowedTransitions[transition{from, to}]
}
