package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestRefundUseCase(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(ctrl *gomock.Controller) (*RefundUseCase, *mocks.MockIPaymentRepository, *mocks.MockIGatewaySelector, *mocks.MockIPaymentGateway) {
		repo := mocks.NewMockIPaymentRepository(ctrl)
		selector := mocks.NewMockIGatewaySelector(ctrl)
		gateway := mocks.NewMockIPaymentGateway(ctrl)
		uc := NewRefundUseCase(repo, selector, NewPaymentLocks())
		return uc, repo, selector, gateway
	}

	completed := func() entities.Payment {
		return entities.Payment{
			ID:           "pay-1",
			Gateway:      "mercadopago",
			Amount:       5000,
			GatewayTxnID: "12345",
			Status:       entities.PaymentStatusCompleted,
		}
	}

	t.Run("invalid amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _, _ := newUseCase(ctrl)

		if _, _, err := uc.Refund(ctx, "pay-1", 0); !errors.Is(err, ErrInvalidRefundAmount) {
			t.Fatalf("expected ErrInvalidRefundAmount, got %v", err)
		}
	})

	t.Run("not completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, _, _ := newUseCase(ctrl)

		p := completed()
		p.Status = entities.PaymentStatusProcessing
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)

		if _, _, err := uc.Refund(ctx, "pay-1", 1000); !errors.Is(err, ErrPaymentNotRefundable) {
			t.Fatalf("expected ErrPaymentNotRefundable, got %v", err)
		}
	})

	t.Run("amount exceeds remaining captured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, _, _ := newUseCase(ctrl)

		p := completed()
		p.RefundedAmount = 4000
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)

		if _, _, err := uc.Refund(ctx, "pay-1", 1500); !errors.Is(err, entities.ErrAmountExceedsCaptured) {
			t.Fatalf("expected ErrAmountExceedsCaptured, got %v", err)
		}
	})

	t.Run("gateway without refund support", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway := newUseCase(ctrl)

		p := completed()
		p.Gateway = "paynow"
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)
		selector.EXPECT().Resolve("paynow").Return(gateway, nil)
		gateway.EXPECT().Descriptor().Return(entities.GatewayDescriptor{Slug: "paynow", SupportsRefunds: false})

		if _, _, err := uc.Refund(ctx, "pay-1", 1000); !errors.Is(err, entities.ErrRefundUnsupported) {
			t.Fatalf("expected ErrRefundUnsupported, got %v", err)
		}
	})

	t.Run("partial refund keeps completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway := newUseCase(ctrl)

		p := completed()
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)
		selector.EXPECT().Resolve("mercadopago").Return(gateway, nil)
		gateway.EXPECT().Descriptor().Return(entities.GatewayDescriptor{Slug: "mercadopago", SupportsRefunds: true})
		gateway.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), int64(2000)).Return(entities.RefundResult{
			RefundID: "r-1",
			Status:   "approved",
			Amount:   2000,
		}, nil)
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-1", "mercadopago.refund", gomock.Any()).Return(nil)
		repo.EXPECT().RecordRefund(gomock.Any(), "pay-1", int64(2000), entities.PaymentStatusCompleted).Return(true, nil)

		got, result, err := uc.Refund(ctx, "pay-1", 2000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCompleted || got.RefundedAmount != 2000 {
			t.Fatalf("unexpected payment after partial refund: %+v", got)
		}
		if result.RefundID != "r-1" {
			t.Fatalf("unexpected refund result: %+v", result)
		}
	})

	t.Run("full refund moves to refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway := newUseCase(ctrl)

		p := completed()
		p.RefundedAmount = 3000
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)
		selector.EXPECT().Resolve("mercadopago").Return(gateway, nil)
		gateway.EXPECT().Descriptor().Return(entities.GatewayDescriptor{Slug: "mercadopago", SupportsRefunds: true})
		gateway.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), int64(2000)).Return(entities.RefundResult{
			RefundID: "r-2",
			Status:   "approved",
			Amount:   2000,
		}, nil)
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-1", "mercadopago.refund", gomock.Any()).Return(nil)
		repo.EXPECT().RecordRefund(gomock.Any(), "pay-1", int64(5000), entities.PaymentStatusRefunded).Return(true, nil)

		got, _, err := uc.Refund(ctx, "pay-1", 2000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusRefunded || got.RefundedAmount != 5000 {
			t.Fatalf("unexpected payment after full refund: %+v", got)
		}
		if got.RefundedAt == nil {
			t.Fatalf("expected refunded_at to be set")
		}
	})

	t.Run("provider failure leaves record untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway := newUseCase(ctrl)

		p := completed()
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil).Times(2)
		selector.EXPECT().Resolve("mercadopago").Return(gateway, nil)
		gateway.EXPECT().Descriptor().Return(entities.GatewayDescriptor{Slug: "mercadopago", SupportsRefunds: true})
		gateway.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), int64(2000)).Return(entities.RefundResult{}, entities.ErrProviderUnavailable)

		if _, _, err := uc.Refund(ctx, "pay-1", 2000); !errors.Is(err, entities.ErrProviderUnavailable) {
			t.Fatalf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}
