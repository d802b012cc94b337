package interfaces

import (
	"context"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// TransitionStatus and RecordRefund are compare-and-swap writes conditioned on
// the current status so concurrent confirmation deliveries cannot interleave
// into a corrupted state.
//
//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_mock.go -package=mocks
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByReference(ctx context.Context, reference string) (entities.Payment, error)
	ListByRegistrationID(ctx context.Context, registrationID string) ([]entities.Payment, error)

	// AppendGatewayResponse stores evidence under a namespaced
	// gateway_response key without touching any other namespace.
	AppendGatewayResponse(ctx context.Context, id, namespace string, data map[string]any) error

	// TransitionStatus applies from -> to (plus the update fn's field writes)
	// only when the stored status still equals from. Returns false, nil when
	// the condition failed, i.e. a concurrent delivery won the race.
	TransitionStatus(ctx context.Context, id string, from, to entities.PaymentStatus, update entities.PaymentStatusUpdate) (bool, error)

	// RecordRefund accumulates the refunded amount and, when toStatus is
	// refunded, CASes completed -> refunded in the same write.
	RecordRefund(ctx context.Context, id string, refundedAmount int64, toStatus entities.PaymentStatus) (bool, error)
}
