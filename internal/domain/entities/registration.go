package entities

import "time"

// RegistrationStatus mirrors the lifecycle owned by the registration service.
// The billing core only reads it to decide whether a payment may be taken.

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// Registration is the payment-owning business record. Created and managed by
// the registration service; the billing core reads it for the amount owed and
// notifies it exactly once when a payment completes.
//
// Storage model (DynamoDB):
//   - PK: id
//   - ticket_issued_at is written with attribute_not_exists so the ticket
//     side effect cannot land twice even across processes.

type Registration struct {
	ID             string             `json:"id"`
	EventID        string             `json:"event_id"`
	UserID         string             `json:"user_id"`
	AmountDue      int64              `json:"amount_due"`
	Currency       string             `json:"currency"`
	Status         RegistrationStatus `json:"status"`
	TicketIssuedAt *time.Time         `json:"ticket_issued_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
