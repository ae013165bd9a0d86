// internal/service/send_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/astronote/campaign-console/internal/backend"
	"github.com/astronote/campaign-console/internal/billing"
	appErrors "github.com/astronote/campaign-console/internal/errors"
	"github.com/astronote/campaign-console/internal/metrics"
	"github.com/astronote/campaign-console/internal/model"
	"github.com/astronote/campaign-console/internal/status"
)

const defaultConfirmTTL = 5 * time.Minute

// ErrSendInFlight rejects a trigger while a previous attempt for the same
// campaign is still awaiting its result. The trigger is a no-op, never a
// queued second request.
var ErrSendInFlight = errors.New("a send attempt is already in flight for this campaign")

// ErrConfirmExpired rejects a confirm with a token that is unknown, already
// used, cancelled or past its TTL.
var ErrConfirmExpired = errors.New("confirmation expired or unknown")

// GateBlockedError is a precondition failure: the billing gate refused the
// send. It never reaches the backend.
type GateBlockedError struct {
	State billing.GateState
}

func (e *GateBlockedError) Error() string {
	return e.State.Reason
}

// StatusBlockedError is a precondition failure: the campaign's current
// status does not permit initiating a send.
type StatusBlockedError struct {
	Status status.Status
}

func (e *StatusBlockedError) Error() string {
	return fmt.Sprintf("campaign cannot be sent in status: %s", e.Status)
}

// SendIntent is the opened confirmation: the token the user must echo back
// plus the copy describing the irreversible effect.
type SendIntent struct {
	ConfirmToken    string    `json:"confirm_token"`
	ConfirmText     string    `json:"confirm_text"`
	TotalRecipients int       `json:"total"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type pendingConfirm struct {
	token     string
	expiresAt time.Time
}

// SendService coordinates the send action for campaigns: billing gate,
// status check, two-step confirmation, single idempotent enqueue request
// and result bookkeeping. All state is in memory and per-process, matching
// the console's "does not survive a reload" contract.
type SendService struct {
	Backend backend.Client
	Gate    *billing.Gate

	log        *slog.Logger
	confirmTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	pending  map[string]pendingConfirm     // campaignID -> open confirmation
	attempts map[string]*model.SendAttempt // campaignID -> latest attempt
}

// NewSendService wires a send service. A zero confirmTTL uses the default.
func NewSendService(b backend.Client, gate *billing.Gate, log *slog.Logger, confirmTTL time.Duration) *SendService {
	if log == nil {
		log = slog.Default()
	}
	if confirmTTL <= 0 {
		confirmTTL = defaultConfirmTTL
	}
	return &SendService{
		Backend:    b,
		Gate:       gate,
		log:        log,
		confirmTTL: confirmTTL,
		now:        time.Now,
		pending:    make(map[string]pendingConfirm),
		attempts:   make(map[string]*model.SendAttempt),
	}
}

var recipientPrinter = message.NewPrinter(language.English)

// confirmText describes the irreversible effect. Recipient counts get
// thousands separators; an unknown count falls back to generic copy.
func confirmText(total int) string {
	if total <= 0 {
		return "This will send the campaign. Continue?"
	}
	return recipientPrinter.Sprintf("This will send the campaign to %d recipients. Continue?", total)
}

// RequestSend opens the confirmation phase. Guards, in order, each a hard
// stop: billing gate, in-flight attempt, campaign status. A repeated
// request replaces any previous unconfirmed token for the campaign.
func (s *SendService) RequestSend(ctx context.Context, campaignID string) (*SendIntent, error) {
	camp, err := s.checkPreconditions(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	expires := s.now().Add(s.confirmTTL)

	s.mu.Lock()
	s.pending[campaignID] = pendingConfirm{token: token, expiresAt: expires}
	s.mu.Unlock()

	s.log.Debug("send confirmation opened", "campaign_id", campaignID, "total", camp.TotalRecipients)

	return &SendIntent{
		ConfirmToken:    token,
		ConfirmText:     confirmText(camp.TotalRecipients),
		TotalRecipients: camp.TotalRecipients,
		ExpiresAt:       expires,
	}, nil
}

// ConfirmSend is the only path that creates a SendAttempt. The token is
// single use; every guard is re-checked because the campaign may have moved
// while the dialog sat open. On success or failure the attempt record holds
// the outcome; guard state is released so a brand-new attempt (new
// confirmation, new idempotency key) stays possible after a failure.
func (s *SendService) ConfirmSend(ctx context.Context, campaignID, token string) (*model.SendAttempt, error) {
	if _, err := s.checkPreconditions(ctx, campaignID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	pc, ok := s.pending[campaignID]
	if !ok || pc.token != token || s.now().After(pc.expiresAt) {
		s.mu.Unlock()
		return nil, ErrConfirmExpired
	}
	if a := s.attempts[campaignID]; a != nil && a.Phase == model.PhaseInFlight {
		s.mu.Unlock()
		metrics.GuardBlocked.Inc()
		return nil, ErrSendInFlight
	}
	delete(s.pending, campaignID)

	attempt := &model.SendAttempt{
		CampaignID:     campaignID,
		IdempotencyKey: uuid.NewString(),
		Phase:          model.PhaseInFlight,
	}
	s.attempts[campaignID] = attempt
	s.mu.Unlock()

	s.log.Info("enqueue request issued", "campaign_id", campaignID, "idempotency_key", attempt.IdempotencyKey)
	metrics.RequestsIssued.Inc()

	// The only suspension point. Phase is already in_flight, so any trigger
	// landing here is rejected above, not queued.
	result, err := s.Backend.Enqueue(ctx, campaignID, attempt.IdempotencyKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		attempt.Phase = model.PhaseFailed
		var ee *appErrors.EnqueueError
		if errors.As(err, &ee) {
			attempt.Err = ee
		} else {
			attempt.Err = &appErrors.EnqueueError{Message: err.Error()}
		}
		attempt.UserMessage = appErrors.Describe(err)
		metrics.Results.WithLabelValues("failed").Inc()
		s.log.Warn("enqueue failed",
			"campaign_id", campaignID,
			"code", attempt.Err.Code,
			"message", attempt.UserMessage)
		return copyAttempt(attempt), nil
	}

	attempt.Phase = model.PhaseSucceeded
	attempt.Result = result
	attempt.UserMessage = result.Summary()
	metrics.Results.WithLabelValues("succeeded").Inc()
	s.log.Info("enqueue succeeded", "campaign_id", campaignID, "queued", result.Queued)
	return copyAttempt(attempt), nil
}

// CancelSend dismisses an open confirmation with no side effect. Unknown or
// stale tokens are ignored.
func (s *SendService) CancelSend(campaignID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pc, ok := s.pending[campaignID]; ok && pc.token == token {
		delete(s.pending, campaignID)
	}
}

// Phase reports where the send flow currently stands for a campaign. An
// open confirmation reads as confirming; otherwise the latest attempt's
// phase; idle when nothing has happened this session.
func (s *SendService) Phase(campaignID string) model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pc, ok := s.pending[campaignID]; ok && !s.now().After(pc.expiresAt) {
		return model.PhaseConfirming
	}
	if a, ok := s.attempts[campaignID]; ok {
		return a.Phase
	}
	return model.PhaseIdle
}

// Attempt returns the latest attempt for the campaign, or nil when no
// confirmed send has happened this session.
func (s *SendService) Attempt(campaignID string) *model.SendAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[campaignID]
	if !ok {
		return nil
	}
	return copyAttempt(a)
}

// checkPreconditions runs the shared guards for both phases. Precondition
// failures produce typed blocked results and never reach the enqueue
// endpoint.
func (s *SendService) checkPreconditions(ctx context.Context, campaignID string) (*model.Campaign, error) {
	sub, err := s.Backend.GetSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch subscription: %w", err)
	}
	gs := s.Gate.Evaluate(*sub)
	if !gs.SubscriptionActive {
		metrics.GateBlocked.Inc()
		s.log.Info("send blocked by billing gate", "campaign_id", campaignID, "reason", gs.Reason)
		return nil, &GateBlockedError{State: gs}
	}

	camp, err := s.Backend.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign %s: %w", campaignID, err)
	}

	s.mu.Lock()
	inFlight := false
	if a := s.attempts[campaignID]; a != nil && a.Phase == model.PhaseInFlight {
		inFlight = true
	}
	s.mu.Unlock()
	if inFlight {
		metrics.GuardBlocked.Inc()
		s.log.Info("send blocked, attempt in flight", "campaign_id", campaignID)
		return nil, ErrSendInFlight
	}

	if !status.CanInitiateSend(camp.Status) {
		s.log.Info("send blocked by campaign status", "campaign_id", campaignID, "status", camp.Status)
		return nil, &StatusBlockedError{Status: camp.Status}
	}

	return camp, nil
}

func copyAttempt(a *model.SendAttempt) *model.SendAttempt {
	cp := *a
	return &cp
}
