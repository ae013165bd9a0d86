package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astronote/campaign-console/internal/status"
)

func TestCanInitiateSend(t *testing.T) {
	assert.True(t, status.CanInitiateSend(status.Draft))
	assert.True(t, status.CanInitiateSend(status.Scheduled))
	assert.False(t, status.CanInitiateSend(status.Sending))
	assert.False(t, status.CanInitiateSend(status.Completed))
	assert.False(t, status.CanInitiateSend(status.Failed))
}

func TestCanEdit(t *testing.T) {
	assert.True(t, status.CanEdit(status.Draft))
	assert.True(t, status.CanEdit(status.Scheduled))
	assert.False(t, status.CanEdit(status.Sending))
	assert.False(t, status.CanEdit(status.Completed))
	assert.False(t, status.CanEdit(status.Failed))
}

func TestTerminalHidesSendAction(t *testing.T) {
	// Terminal campaigns hide the send button entirely rather than
	// disabling it. Failed has no retry path.
	assert.False(t, status.ShowSendAction(status.Completed))
	assert.False(t, status.ShowSendAction(status.Failed))
	assert.True(t, status.ShowSendAction(status.Draft))
	assert.True(t, status.ShowSendAction(status.Scheduled))
	assert.True(t, status.ShowSendAction(status.Sending))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, status.CanTransition(status.Draft, status.Sending))
	assert.True(t, status.CanTransition(status.Scheduled, status.Sending))
	assert.True(t, status.CanTransition(status.Sending, status.Completed))
	assert.True(t, status.CanTransition(status.Sending, status.Failed))

	// No edges out of terminal states.
	assert.False(t, status.CanTransition(status.Completed, status.Sending))
	assert.False(t, status.CanTransition(status.Failed, status.Draft))
	assert.False(t, status.CanTransition(status.Failed, status.Sending))

	// No skipping the sending state.
	assert.False(t, status.CanTransition(status.Draft, status.Completed))
}

func TestValid(t *testing.T) {
	assert.True(t, status.Valid(status.Draft))
	assert.False(t, status.Valid(status.Status("paused")))
	assert.False(t, status.Valid(status.Status("")))
}
