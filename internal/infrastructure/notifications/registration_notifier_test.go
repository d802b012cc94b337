package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestRegistrationNotifierPaymentCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("first completion issues the ticket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		regRepo := mocks.NewMockIRegistrationRepository(ctrl)
		n := NewRegistrationNotifier(regRepo)

		regRepo.EXPECT().MarkTicketIssued(gomock.Any(), "reg-1", "pay-1").Return(true, nil)

		if err := n.PaymentCompleted(ctx, "reg-1", "pay-1", "txn-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("replayed completion is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		regRepo := mocks.NewMockIRegistrationRepository(ctrl)
		n := NewRegistrationNotifier(regRepo)

		regRepo.EXPECT().MarkTicketIssued(gomock.Any(), "reg-1", "pay-1").Return(false, nil)

		if err := n.PaymentCompleted(ctx, "reg-1", "pay-1", "txn-1"); err != nil {
			t.Fatalf("expected idempotent success, got %v", err)
		}
	})

	t.Run("storage failure propagates for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		regRepo := mocks.NewMockIRegistrationRepository(ctrl)
		n := NewRegistrationNotifier(regRepo)

		boom := errors.New("dynamodb unavailable")
		regRepo.EXPECT().MarkTicketIssued(gomock.Any(), "reg-1", "pay-1").Return(false, boom)

		if err := n.PaymentCompleted(ctx, "reg-1", "pay-1", "txn-1"); !errors.Is(err, boom) {
			t.Fatalf("expected the storage error, got %v", err)
		}
	})
}
