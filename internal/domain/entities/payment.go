package entities

import "time"

// PaymentStatus represents the reconciliation state of a payment.
//
// Terminal set: completed, failed, cancelled, refunded. Once a payment is
// terminal only completed -> refunded may follow, and only once.

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// IsTerminal reports whether s admits no further non-refund transition.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// ConfirmationChannel records which channel produced a piece of evidence.
// Webhook deliveries are signature-verified; redirect results are forwarded by
// the client and carry no cryptographic guarantee.

type ConfirmationChannel string

const (
	ChannelInitialization ConfirmationChannel = "initialization"
	ChannelWebhook        ConfirmationChannel = "webhook"
	ChannelRedirect       ConfirmationChannel = "redirect"
	ChannelVerify         ConfirmationChannel = "verify"
	ChannelRefund         ConfirmationChannel = "refund"
)

// GatewayResponse accumulates every raw confirmation payload a payment has
// ever received, keyed by "<gateway>.<channel>" namespace so concurrent
// channels cannot clobber each other's evidence.

type GatewayResponse map[string]map[string]any

// Merge stores data under ns. Existing namespaces are preserved; re-delivery
// into an existing namespace merges per inner key instead of replacing the
// namespace wholesale.
func (g GatewayResponse) Merge(ns string, data map[string]any) GatewayResponse {
	if g == nil {
		g = GatewayResponse{}
	}
	if data == nil {
		return g
	}
	existing, ok := g[ns]
	if !ok || existing == nil {
		copied := make(map[string]any, len(data))
		for k, v := range data {
			copied[k] = v
		}
		g[ns] = copied
		return g
	}
	for k, v := range data {
		existing[k] = v
	}
	return g
}

// Lookup returns a string value stored under ns/key, if present.
func (g GatewayResponse) Lookup(ns, key string) (string, bool) {
	inner, ok := g[ns]
	if !ok {
		return "", false
	}
	v, ok := inner[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// Payment is the unit of reconciliation persisted by the billing core.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_reference-index): payment_reference
//   - GSI2 (registration_id-index): registration_id
//
// PaymentReference is generated by this system and echoed back by providers;
// GatewayTransactionID is provider-assigned and filled on confirmation.

type Payment struct {
	ID               string        `json:"id"`
	RegistrationID   string        `json:"registration_id"`
	EventID          string        `json:"event_id"`
	UserID           string        `json:"user_id"`
	Gateway          string        `json:"gateway"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	PaymentReference string        `json:"payment_reference"`
	GatewayTxnID     string        `json:"gateway_transaction_id,omitempty"`
	Status           PaymentStatus `json:"status"`
	RefundedAmount   int64         `json:"refunded_amount"`

	GatewayResponse GatewayResponse `json:"gateway_response,omitempty"`

	PaidAt     *time.Time `json:"paid_at,omitempty"`
	FailedAt   *time.Time `json:"failed_at,omitempty"`
	RefundedAt *time.Time `json:"refunded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// EvidenceNamespace builds the namespaced gateway_response key for a channel.
func (p Payment) EvidenceNamespace(channel ConfirmationChannel) string {
	return p.Gateway + "." + string(channel)
}

// PaymentStatusUpdate carries the field writes that accompany a status
// transition. Nil members are left untouched.
type PaymentStatusUpdate struct {
	GatewayTxnID string
	PaidAt       *time.Time
	FailedAt     *time.Time
	RefundedAt   *time.Time
}

// InitOptions carries caller-supplied initiation parameters.
type InitOptions struct {
	ReturnURL string
	CancelURL string
	// Currency overrides the payment currency for providers that settle in a
	// single currency.
	Currency string
}

// InitResultKind discriminates the two initiation result shapes.
type InitResultKind string

const (
	InitResultRedirect InitResultKind = "redirect"
	InitResultCheckout InitResultKind = "checkout_session"
)

// InitResult is a tagged union: either a bare redirect URL or a
// provider-hosted checkout session plus its direct checkout URL.
type InitResult struct {
	Kind        InitResultKind
	RedirectURL string
	CheckoutURL string
	SessionID   string
	// Evidence is persisted under the gateway's initialization namespace.
	Evidence map[string]any
}

// VerifyResult is the normalized answer of a provider-side status query.
type VerifyResult struct {
	Status        PaymentStatus
	TransactionID string
	Raw           map[string]any
}

// RefundResult reports a provider-side refund.
type RefundResult struct {
	RefundID string
	Status   string
	Amount   int64
	Raw      map[string]any
}

// WebhookPayload is the raw inbound confirmation event. Signed providers need
// the unparsed body plus headers; the redirect-only provider delivers
// client-forwarded query parameters.
type WebhookPayload struct {
	RawBody []byte
	Headers map[string]string
	Params  map[string]string
}

// WebhookResult is the normalized triple extracted from a confirmation event.
type WebhookResult struct {
	PaymentReference string
	Status           PaymentStatus
	TransactionID    string
	Channel          ConfirmationChannel
	Raw              map[string]any
}
