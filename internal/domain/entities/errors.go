package entities

import "errors"

// Failure taxonomy shared by adapters, usecases and the HTTP edge. Adapters
// wrap these with provider context; handlers map them to AppError codes.
var (
	// ErrUnsupportedGateway: unknown provider identifier. Fatal to the
	// initiating request, never silently defaulted to another provider.
	ErrUnsupportedGateway = errors.New("unsupported gateway")

	// ErrAlreadyCompleted: re-initialization attempted on a terminal payment.
	ErrAlreadyCompleted = errors.New("payment already completed")

	// ErrMissingCorrelationData: verify attempted before any provider-side
	// identifier was recorded. The caller must re-initialize.
	ErrMissingCorrelationData = errors.New("missing provider correlation data")

	// ErrInvalidSignature: webhook rejected outright, no state change.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrUnknownReference: confirmation references a payment that does not
	// exist. Logged and ignored, not fatal to the caller process.
	ErrUnknownReference = errors.New("unknown payment reference")

	// ErrMalformedPayload: confirmation payload cannot be parsed.
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrRefundUnsupported: provider capability gap, surfaced to the caller.
	ErrRefundUnsupported = errors.New("refunds not supported by gateway")

	// ErrAmountExceedsCaptured: refund amount above the remaining captured
	// amount.
	ErrAmountExceedsCaptured = errors.New("refund amount exceeds captured amount")

	// ErrProviderUnavailable: network or timeout failure talking to the
	// provider. Propagated so the caller applies its own retry policy; the
	// core never retries a charge submission on its own.
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)
