package interfaces

import (
	"context"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
)

// IRegistrationRepository is the billing-side surface over the payment-owning
// business record. Registration lifecycle is owned by the registration
// service; billing loads it for the amount owed and marks ticket issuance on
// completion.
//
//go:generate mockgen -source=registration_interfaces.go -destination=mocks/registration_mocks.go -package=mocks
type IRegistrationRepository interface {
	GetByID(ctx context.Context, id string) (entities.Registration, error)

	// MarkTicketIssued records the one-time ticket issuance. Returns false,
	// nil when a ticket was already issued for this registration.
	MarkTicketIssued(ctx context.Context, registrationID, paymentID string) (bool, error)
}

// IRegistrationNotifier delivers the one-time downstream completion side
// effect (ticket issuance, confirmation email trigger). The reconciliation
// coordinator calls it exactly once per payment.
type IRegistrationNotifier interface {
	PaymentCompleted(ctx context.Context, registrationID, paymentID, gatewayTransactionID string) error
}
