package request

// PaymentInitiationRequest is the payload for creating and initiating a
// payment against a registration. The amount owed comes from the registration
// record, never from the caller.

type PaymentInitiationRequest struct {
	Gateway   string `json:"gateway" binding:"required"`
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
	Currency  string `json:"currency"`
}

// RefundRequest carries the refund amount in minor units (cents). A partial
// amount is allowed where the provider supports it; omitting the field is
// rejected rather than defaulted to a full refund.

type RefundRequest struct {
	AmountMinorUnits int64 `json:"amount" binding:"required"`
}
