package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

var (
	ErrInvalidRefundAmount  = errors.New("invalid refund amount")
	ErrPaymentNotRefundable = errors.New("payment not in a refundable state")
)

// IRefundUseCase issues partial or full refunds where the provider supports
// them. Partial refunds accumulate; the payment only moves to refunded once
// the full captured amount has been returned.

type IRefundUseCase interface {
	Refund(ctx context.Context, paymentID string, amountMinorUnits int64) (entities.Payment, entities.RefundResult, error)
}

type RefundUseCase struct {
	repo     interfaces.IPaymentRepository
	selector interfaces.IGatewaySelector
	locks    *PaymentLocks
}

var _ IRefundUseCase = (*RefundUseCase)(nil)

func NewRefundUseCase(repo interfaces.IPaymentRepository, selector interfaces.IGatewaySelector, locks *PaymentLocks) *RefundUseCase {
	return &RefundUseCase{repo: repo, selector: selector, locks: locks}
}

func (u *RefundUseCase) Refund(ctx context.Context, paymentID string, amountMinorUnits int64) (entities.Payment, entities.RefundResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[payment][refund] start payment_id=%s amount=%d", paymentID, amountMinorUnits)
	if paymentID == "" {
		return entities.Payment{}, entities.RefundResult{}, ErrInvalidPaymentID
	}
	if amountMinorUnits <= 0 {
		return entities.Payment{}, entities.RefundResult{}, ErrInvalidRefundAmount
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, entities.RefundResult{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, entities.RefundResult{}, ErrPaymentNotFound
	}

	unlock := u.locks.Lock(p.ID)
	defer unlock()

	p, err = u.repo.GetByID(ctx, p.ID)
	if err != nil {
		return entities.Payment{}, entities.RefundResult{}, err
	}

	if p.Status != entities.PaymentStatusCompleted {
		log.Printf("[payment][refund] rejected payment_id=%s status=%s", p.ID, p.Status)
		return entities.Payment{}, entities.RefundResult{}, fmt.Errorf("%w: status is %s", ErrPaymentNotRefundable, p.Status)
	}

	remaining := p.Amount - p.RefundedAmount
	if amountMinorUnits > remaining {
		log.Printf("[payment][refund] amount exceeds captured payment_id=%s requested=%d remaining=%d", p.ID, amountMinorUnits, remaining)
		return entities.Payment{}, entities.RefundResult{}, fmt.Errorf("%w: requested %d, remaining %d", entities.ErrAmountExceedsCaptured, amountMinorUnits, remaining)
	}

	adapter, err := u.selector.Resolve(p.Gateway)
	if err != nil {
		return entities.Payment{}, entities.RefundResult{}, err
	}
	if !adapter.Descriptor().SupportsRefunds {
		log.Printf("[payment][refund] gateway lacks refund support payment_id=%s gateway=%s", p.ID, p.Gateway)
		return entities.Payment{}, entities.RefundResult{}, fmt.Errorf("%w: %s", entities.ErrRefundUnsupported, p.Gateway)
	}

	result, err := adapter.RefundPayment(ctx, &p, amountMinorUnits)
	if err != nil {
		log.Printf("[payment][refund] provider refund failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, entities.RefundResult{}, err
	}

	evidence := map[string]any{
		"refund_id": result.RefundID,
		"status":    result.Status,
		"amount":    amountMinorUnits,
		"issued_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range result.Raw {
		evidence[k] = v
	}
	ns := p.EvidenceNamespace(entities.ChannelRefund)
	p.GatewayResponse = p.GatewayResponse.Merge(ns, evidence)
	if err := u.repo.AppendGatewayResponse(ctx, p.ID, ns, p.GatewayResponse[ns]); err != nil {
		log.Printf("[payment][refund] evidence write failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, entities.RefundResult{}, err
	}

	newTotal := p.RefundedAmount + amountMinorUnits
	toStatus := entities.PaymentStatusCompleted
	if newTotal == p.Amount {
		toStatus = entities.PaymentStatusRefunded
	}
	applied, err := u.repo.RecordRefund(ctx, p.ID, newTotal, toStatus)
	if err != nil {
		return entities.Payment{}, entities.RefundResult{}, err
	}
	if !applied {
		// The CAS can only lose to a provider-initiated refund notice that
		// landed between our read and write; re-read and report the truth.
		log.Printf("[payment][refund] refund record lost race payment_id=%s", p.ID)
		p, err = u.repo.GetByID(ctx, p.ID)
		return p, result, err
	}

	p.RefundedAmount = newTotal
	p.Status = toStatus
	if toStatus == entities.PaymentStatusRefunded {
		now := time.Now().UTC()
		p.RefundedAt = &now
	}
	log.Printf("[payment][refund] success payment_id=%s refund_id=%s refunded_total=%d status=%s", p.ID, result.RefundID, newTotal, p.Status)
	return p, result, nil
}
