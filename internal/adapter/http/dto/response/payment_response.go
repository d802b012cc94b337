package response

import (
	"time"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
)

type PaymentResponse struct {
	PaymentID        string     `json:"payment_id"`
	RegistrationID   string     `json:"registration_id"`
	EventID          string     `json:"event_id"`
	UserID           string     `json:"user_id"`
	Gateway          string     `json:"gateway"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentReference string     `json:"payment_reference"`
	GatewayTxnID     string     `json:"gateway_transaction_id,omitempty"`
	Status           string     `json:"status"`
	RefundedAmount   int64      `json:"refunded_amount"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	FailedAt         *time.Time `json:"failed_at,omitempty"`
	RefundedAt       *time.Time `json:"refunded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.ID,
		RegistrationID:   p.RegistrationID,
		EventID:          p.EventID,
		UserID:           p.UserID,
		Gateway:          p.Gateway,
		Amount:           p.Amount,
		Currency:         p.Currency,
		PaymentReference: p.PaymentReference,
		GatewayTxnID:     p.GatewayTxnID,
		Status:           string(p.Status),
		RefundedAmount:   p.RefundedAmount,
		PaidAt:           p.PaidAt,
		FailedAt:         p.FailedAt,
		RefundedAt:       p.RefundedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// PaymentInitiationResponse is the union of the two initiation shapes: a bare
// redirect URL for redirect gateways, or a checkout session (URL + session id)
// for hosted-checkout gateways. Kind tells the client which fields are set.
type PaymentInitiationResponse struct {
	Payment     PaymentResponse `json:"payment"`
	Kind        string          `json:"kind"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
	SessionID   string          `json:"session_id,omitempty"`
}

func FromInitiation(p entities.Payment, r entities.InitResult) PaymentInitiationResponse {
	return PaymentInitiationResponse{
		Payment:     FromPayment(p),
		Kind:        string(r.Kind),
		RedirectURL: r.RedirectURL,
		CheckoutURL: r.CheckoutURL,
		SessionID:   r.SessionID,
	}
}

type RefundResponse struct {
	Payment  PaymentResponse `json:"payment"`
	RefundID string          `json:"refund_id,omitempty"`
	Status   string          `json:"status,omitempty"`
	Amount   int64           `json:"amount"`
}

func FromRefund(p entities.Payment, r entities.RefundResult) RefundResponse {
	return RefundResponse{
		Payment:  FromPayment(p),
		RefundID: r.RefundID,
		Status:   r.Status,
		Amount:   r.Amount,
	}
}
