package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

// PaymentLocks serializes state-transition writes per payment identifier.
// Payments are independent units of work; there is no cross-payment locking.
type PaymentLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func NewPaymentLocks() *PaymentLocks {
	return &PaymentLocks{m: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-payment mutex and returns its release func.
func (l *PaymentLocks) Lock(paymentID string) func() {
	l.mu.Lock()
	pl, ok := l.m[paymentID]
	if !ok {
		pl = &sync.Mutex{}
		l.m[paymentID] = pl
	}
	l.mu.Unlock()

	pl.Lock()
	return pl.Unlock
}

// NextStatus computes the transition for a proposed status. Terminal states
// are absorbing (only completed -> refunded may follow, via the refund path);
// non-terminal proposals are ignored once a terminal state is reached;
// processing is reachable from pending only. The second return value reports
// whether a transition should be applied.
func NextStatus(current, proposed entities.PaymentStatus) (entities.PaymentStatus, bool) {
	if proposed == current {
		return current, false
	}
	if current.IsTerminal() {
		if current == entities.PaymentStatusCompleted && proposed == entities.PaymentStatusRefunded {
			return entities.PaymentStatusRefunded, true
		}
		return current, false
	}
	switch proposed {
	case entities.PaymentStatusProcessing:
		if current == entities.PaymentStatusPending {
			return entities.PaymentStatusProcessing, true
		}
		return current, false
	case entities.PaymentStatusCompleted, entities.PaymentStatusFailed, entities.PaymentStatusCancelled:
		return proposed, true
	default:
		// pending never re-applies; refunded only ever follows completed.
		return current, false
	}
}

// IReconciliationUseCase funnels every confirmation event (webhook payload,
// polling result, forwarded redirect status) through one idempotent state
// transition per payment and triggers the downstream completion side effect
// exactly once.

type IReconciliationUseCase interface {
	HandleWebhook(ctx context.Context, gateway string, payload entities.WebhookPayload) (entities.Payment, error)
	VerifyAndReconcile(ctx context.Context, paymentID string) (entities.Payment, error)
}

type ReconciliationUseCase struct {
	repo     interfaces.IPaymentRepository
	selector interfaces.IGatewaySelector
	notifier interfaces.IRegistrationNotifier
	locks    *PaymentLocks
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(repo interfaces.IPaymentRepository, selector interfaces.IGatewaySelector, notifier interfaces.IRegistrationNotifier, locks *PaymentLocks) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo, selector: selector, notifier: notifier, locks: locks}
}

// HandleWebhook normalizes an inbound confirmation event through the owning
// adapter and applies the resulting proposal. Signature verification happens
// inside the adapter before any state is touched; a signature failure
// therefore leaves the payment byte-for-byte unchanged.
func (u *ReconciliationUseCase) HandleWebhook(ctx context.Context, gateway string, payload entities.WebhookPayload) (entities.Payment, error) {
	adapter, err := u.selector.Resolve(gateway)
	if err != nil {
		return entities.Payment{}, err
	}

	result, err := adapter.HandleWebhook(ctx, payload)
	if err != nil {
		log.Printf("[payment][reconcile] webhook rejected gateway=%s err=%v", gateway, err)
		return entities.Payment{}, err
	}

	p, err := u.repo.GetByReference(ctx, result.PaymentReference)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		log.Printf("[payment][reconcile] webhook for unknown reference gateway=%s reference=%q proposed=%s", gateway, result.PaymentReference, result.Status)
		return entities.Payment{}, fmt.Errorf("%w: %q", entities.ErrUnknownReference, result.PaymentReference)
	}

	unlock := u.locks.Lock(p.ID)
	defer unlock()

	// Re-read under the lock; a concurrent delivery may have moved it.
	p, err = u.repo.GetByID(ctx, p.ID)
	if err != nil {
		return entities.Payment{}, err
	}

	if err := u.appendEvidence(ctx, &p, result.Channel, result.Raw); err != nil {
		return entities.Payment{}, err
	}
	return u.applyTransition(ctx, p, result.Status, result.TransactionID, result.Channel)
}

// VerifyAndReconcile queries the provider-side status through the adapter and
// applies the answer. Safe to call repeatedly from the caller's own schedule;
// verification never flips the status by itself, only the transition below
// does.
func (u *ReconciliationUseCase) VerifyAndReconcile(ctx context.Context, paymentID string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}

	adapter, err := u.selector.Resolve(p.Gateway)
	if err != nil {
		return entities.Payment{}, err
	}

	result, err := adapter.VerifyPayment(ctx, &p)
	if err != nil {
		log.Printf("[payment][reconcile] verify failed payment_id=%s gateway=%s err=%v", p.ID, p.Gateway, err)
		return entities.Payment{}, err
	}

	unlock := u.locks.Lock(p.ID)
	defer unlock()

	p, err = u.repo.GetByID(ctx, p.ID)
	if err != nil {
		return entities.Payment{}, err
	}

	if err := u.appendEvidence(ctx, &p, entities.ChannelVerify, result.Raw); err != nil {
		return entities.Payment{}, err
	}
	return u.applyTransition(ctx, p, result.Status, result.TransactionID, entities.ChannelVerify)
}

func (u *ReconciliationUseCase) appendEvidence(ctx context.Context, p *entities.Payment, channel entities.ConfirmationChannel, raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	u.checkAmountDivergence(*p, channel, raw)

	// Merge first so a re-delivery with fewer fields cannot shrink what is
	// already on record for this channel; the write then persists the merged
	// namespace without touching any other.
	ns := p.EvidenceNamespace(channel)
	p.GatewayResponse = p.GatewayResponse.Merge(ns, raw)
	if err := u.repo.AppendGatewayResponse(ctx, p.ID, ns, p.GatewayResponse[ns]); err != nil {
		log.Printf("[payment][reconcile] evidence write failed payment_id=%s namespace=%s err=%v", p.ID, ns, err)
		return err
	}
	return nil
}

// checkAmountDivergence logs provider-reported amounts that do not match the
// stored amount. The stored amount is immutable and never substituted; the
// divergent value stays available in the evidence bag for audit.
func (u *ReconciliationUseCase) checkAmountDivergence(p entities.Payment, channel entities.ConfirmationChannel, raw map[string]any) {
	for _, key := range []string{"transaction_amount", "amount"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var reported float64
		switch n := v.(type) {
		case float64:
			reported = n
		case string:
			if _, err := fmt.Sscanf(n, "%f", &reported); err != nil {
				return
			}
		default:
			return
		}
		expected := float64(p.Amount) / 100
		if reported != expected {
			log.Printf("[payment][reconcile] amount divergence payment_id=%s channel=%s expected=%.2f reported=%.2f", p.ID, channel, expected, reported)
		}
		return
	}
}

// applyTransition is the single writer for terminal statuses. The repository
// write is a compare-and-swap on the current status, so of N concurrent
// deliveries proposing completion exactly one lands it, and only that one
// triggers the downstream side effect.
func (u *ReconciliationUseCase) applyTransition(ctx context.Context, p entities.Payment, proposed entities.PaymentStatus, transactionID string, channel entities.ConfirmationChannel) (entities.Payment, error) {
	next, ok := NextStatus(p.Status, proposed)
	if !ok {
		log.Printf("[payment][reconcile] transition ignored payment_id=%s current=%s proposed=%s channel=%s", p.ID, p.Status, proposed, channel)
		return p, nil
	}

	now := time.Now().UTC()
	update := entities.PaymentStatusUpdate{GatewayTxnID: transactionID}
	switch next {
	case entities.PaymentStatusCompleted:
		update.PaidAt = &now
	case entities.PaymentStatusFailed, entities.PaymentStatusCancelled:
		update.FailedAt = &now
	case entities.PaymentStatusRefunded:
		update.RefundedAt = &now
	}

	applied, err := u.repo.TransitionStatus(ctx, p.ID, p.Status, next, update)
	if err != nil {
		return entities.Payment{}, err
	}
	if !applied {
		log.Printf("[payment][reconcile] transition lost race payment_id=%s current=%s proposed=%s channel=%s", p.ID, p.Status, proposed, channel)
		return u.repo.GetByID(ctx, p.ID)
	}

	log.Printf("[payment][reconcile] transition applied payment_id=%s from=%s to=%s channel=%s", p.ID, p.Status, next, channel)

	if next == entities.PaymentStatusCompleted {
		if err := u.notifier.PaymentCompleted(ctx, p.RegistrationID, p.ID, transactionID); err != nil {
			// The transition is durable either way; the notifier's own
			// conditional write keeps a later manual retry safe.
			log.Printf("[payment][reconcile] completion notification failed payment_id=%s registration_id=%s err=%v", p.ID, p.RegistrationID, err)
		}
	}

	p.Status = next
	if transactionID != "" {
		p.GatewayTxnID = transactionID
	}
	switch next {
	case entities.PaymentStatusCompleted:
		p.PaidAt = &now
	case entities.PaymentStatusFailed, entities.PaymentStatusCancelled:
		p.FailedAt = &now
	case entities.PaymentStatusRefunded:
		p.RefundedAt = &now
	}
	p.UpdatedAt = now
	return p, nil
}
