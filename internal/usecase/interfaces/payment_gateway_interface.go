package interfaces

import (
	"context"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
)

// IPaymentGateway is the uniform contract every provider adapter satisfies.
//
// The three integrated providers confirm payments through incompatible
// topologies (signed webhook, polling API plus webhook, forwarded browser
// redirect); this interface is the single seam the reconciliation coordinator
// works against.
//
// Rules adapters must honor:
//   - InitializePayment may call the provider but must not move the payment to
//     a terminal status. Providers that consider an order in flight the moment
//     it is created may set the in-memory payment to processing; the caller
//     persists that write under the payment lock.
//   - VerifyPayment is safe to call repeatedly and never flips the stored
//     status itself; promoting evidence to a terminal state is the
//     coordinator's job.
//   - HandleWebhook must verify authenticity (where the channel supports it)
//     before trusting any field, and only normalizes: it returns the
//     {reference, status, transaction_id} triple plus raw evidence.
//
//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mocks
type IPaymentGateway interface {
	Descriptor() entities.GatewayDescriptor
	InitializePayment(ctx context.Context, p *entities.Payment, opts entities.InitOptions) (entities.InitResult, error)
	VerifyPayment(ctx context.Context, p *entities.Payment) (entities.VerifyResult, error)
	RefundPayment(ctx context.Context, p *entities.Payment, amountMinorUnits int64) (entities.RefundResult, error)
	HandleWebhook(ctx context.Context, payload entities.WebhookPayload) (entities.WebhookResult, error)
}

// IGatewaySelector resolves a provider identifier (slug or alias) to a live
// adapter. Unknown identifiers fail with entities.ErrUnsupportedGateway.
type IGatewaySelector interface {
	Resolve(identifier string) (IPaymentGateway, error)
}
