package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name     string
		current  entities.PaymentStatus
		proposed entities.PaymentStatus
		want     entities.PaymentStatus
		apply    bool
	}{
		{"pending to processing", entities.PaymentStatusPending, entities.PaymentStatusProcessing, entities.PaymentStatusProcessing, true},
		{"pending to completed", entities.PaymentStatusPending, entities.PaymentStatusCompleted, entities.PaymentStatusCompleted, true},
		{"processing to completed", entities.PaymentStatusProcessing, entities.PaymentStatusCompleted, entities.PaymentStatusCompleted, true},
		{"processing to failed", entities.PaymentStatusProcessing, entities.PaymentStatusFailed, entities.PaymentStatusFailed, true},
		{"processing to cancelled", entities.PaymentStatusProcessing, entities.PaymentStatusCancelled, entities.PaymentStatusCancelled, true},
		{"same status no-op", entities.PaymentStatusProcessing, entities.PaymentStatusProcessing, entities.PaymentStatusProcessing, false},
		{"completed absorbs processing", entities.PaymentStatusCompleted, entities.PaymentStatusProcessing, entities.PaymentStatusCompleted, false},
		{"completed absorbs failed", entities.PaymentStatusCompleted, entities.PaymentStatusFailed, entities.PaymentStatusCompleted, false},
		{"completed absorbs cancelled", entities.PaymentStatusCompleted, entities.PaymentStatusCancelled, entities.PaymentStatusCompleted, false},
		{"completed allows refunded", entities.PaymentStatusCompleted, entities.PaymentStatusRefunded, entities.PaymentStatusRefunded, true},
		{"failed absorbs completed", entities.PaymentStatusFailed, entities.PaymentStatusCompleted, entities.PaymentStatusFailed, false},
		{"cancelled absorbs completed", entities.PaymentStatusCancelled, entities.PaymentStatusCompleted, entities.PaymentStatusCancelled, false},
		{"refunded absorbs everything", entities.PaymentStatusRefunded, entities.PaymentStatusCompleted, entities.PaymentStatusRefunded, false},
		{"processing not reachable from failed", entities.PaymentStatusFailed, entities.PaymentStatusProcessing, entities.PaymentStatusFailed, false},
		{"pending never re-applies", entities.PaymentStatusProcessing, entities.PaymentStatusPending, entities.PaymentStatusProcessing, false},
		{"refunded needs completed first", entities.PaymentStatusProcessing, entities.PaymentStatusRefunded, entities.PaymentStatusProcessing, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, apply := NextStatus(tc.current, tc.proposed)
			if got != tc.want || apply != tc.apply {
				t.Fatalf("NextStatus(%s, %s) = (%s, %v), want (%s, %v)", tc.current, tc.proposed, got, apply, tc.want, tc.apply)
			}
		})
	}
}

func TestReconciliationHandleWebhook(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(ctrl *gomock.Controller) (*ReconciliationUseCase, *mocks.MockIPaymentRepository, *mocks.MockIGatewaySelector, *mocks.MockIPaymentGateway, *mocks.MockIRegistrationNotifier) {
		repo := mocks.NewMockIPaymentRepository(ctrl)
		selector := mocks.NewMockIGatewaySelector(ctrl)
		gateway := mocks.NewMockIPaymentGateway(ctrl)
		notifier := mocks.NewMockIRegistrationNotifier(ctrl)
		uc := NewReconciliationUseCase(repo, selector, notifier, NewPaymentLocks())
		return uc, repo, selector, gateway, notifier
	}

	t.Run("invalid signature leaves state untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, selector, gateway, _ := newUseCase(ctrl)

		selector.EXPECT().Resolve("mercadopago").Return(gateway, nil)
		gateway.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(entities.WebhookResult{}, entities.ErrInvalidSignature)

		_, err := uc.HandleWebhook(ctx, "mercadopago", entities.WebhookPayload{RawBody: []byte(`{}`)})
		if !errors.Is(err, entities.ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
		// No repository expectations were registered: any write would fail the test.
	})

	t.Run("unknown reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway, _ := newUseCase(ctrl)

		selector.EXPECT().Resolve("paynow").Return(gateway, nil)
		gateway.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(entities.WebhookResult{
			PaymentReference: "SCE-UNKNOWN",
			Status:           entities.PaymentStatusCompleted,
			Channel:          entities.ChannelWebhook,
		}, nil)
		repo.EXPECT().GetByReference(gomock.Any(), "SCE-UNKNOWN").Return(entities.Payment{}, nil)

		_, err := uc.HandleWebhook(ctx, "paynow", entities.WebhookPayload{})
		if !errors.Is(err, entities.ErrUnknownReference) {
			t.Fatalf("expected ErrUnknownReference, got %v", err)
		}
	})

	t.Run("completion applies once and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway, notifier := newUseCase(ctrl)

		p := entities.Payment{
			ID:               "pay-1",
			RegistrationID:   "reg-1",
			Gateway:          "paynow",
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusProcessing,
		}

		selector.EXPECT().Resolve("paynow").Return(gateway, nil)
		gateway.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(entities.WebhookResult{
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusCompleted,
			TransactionID:    "pn-77",
			Channel:          entities.ChannelWebhook,
			Raw:              map[string]any{"status": "Paid", "paynowreference": "pn-77"},
		}, nil)
		repo.EXPECT().GetByReference(gomock.Any(), "SCE-1").Return(p, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-1", "paynow.webhook", gomock.Any()).Return(nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "pay-1", entities.PaymentStatusProcessing, entities.PaymentStatusCompleted, gomock.Any()).Return(true, nil)
		notifier.EXPECT().PaymentCompleted(gomock.Any(), "reg-1", "pay-1", "pn-77").Return(nil)

		got, err := uc.HandleWebhook(ctx, "paynow", entities.WebhookPayload{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCompleted || got.GatewayTxnID != "pn-77" {
			t.Fatalf("unexpected payment after transition: %+v", got)
		}
	})

	t.Run("duplicate delivery is evidence-only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway, _ := newUseCase(ctrl)

		done := entities.Payment{
			ID:               "pay-1",
			RegistrationID:   "reg-1",
			Gateway:          "paynow",
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusCompleted,
		}

		selector.EXPECT().Resolve("paynow").Return(gateway, nil)
		gateway.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(entities.WebhookResult{
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusCompleted,
			TransactionID:    "pn-77",
			Channel:          entities.ChannelWebhook,
			Raw:              map[string]any{"status": "Paid"},
		}, nil)
		repo.EXPECT().GetByReference(gomock.Any(), "SCE-1").Return(done, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(done, nil)
		// Evidence still lands; no transition, no notification.
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-1", "paynow.webhook", gomock.Any()).Return(nil)

		got, err := uc.HandleWebhook(ctx, "paynow", entities.WebhookPayload{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", got.Status)
		}
	})

	t.Run("lost transition race re-reads truth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, selector, gateway, _ := newUseCase(ctrl)

		inFlight := entities.Payment{
			ID:               "pay-1",
			RegistrationID:   "reg-1",
			Gateway:          "paynow",
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusProcessing,
		}
		settled := inFlight
		settled.Status = entities.PaymentStatusFailed

		selector.EXPECT().Resolve("paynow").Return(gateway, nil)
		gateway.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(entities.WebhookResult{
			PaymentReference: "SCE-1",
			Status:           entities.PaymentStatusCompleted,
			Channel:          entities.ChannelWebhook,
			Raw:              map[string]any{"status": "Paid"},
		}, nil)
		repo.EXPECT().GetByReference(gomock.Any(), "SCE-1").Return(inFlight, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(inFlight, nil)
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-1", "paynow.webhook", gomock.Any()).Return(nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "pay-1", entities.PaymentStatusProcessing, entities.PaymentStatusCompleted, gomock.Any()).Return(false, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(settled, nil)

		got, err := uc.HandleWebhook(ctx, "paynow", entities.WebhookPayload{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusFailed {
			t.Fatalf("expected the stored status after the lost race, got %s", got.Status)
		}
	})
}

func TestReconciliationVerifyAndReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("verify promotes stored redirect evidence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockIPaymentRepository(ctrl)
		selector := mocks.NewMockIGatewaySelector(ctrl)
		gateway := mocks.NewMockIPaymentGateway(ctrl)
		notifier := mocks.NewMockIRegistrationNotifier(ctrl)
		uc := NewReconciliationUseCase(repo, selector, notifier, NewPaymentLocks())

		p := entities.Payment{
			ID:             "pay-9",
			RegistrationID: "reg-9",
			Gateway:        "vpayments",
			Status:         entities.PaymentStatusProcessing,
		}

		repo.EXPECT().GetByID(gomock.Any(), "pay-9").Return(p, nil)
		selector.EXPECT().Resolve("vpayments").Return(gateway, nil)
		gateway.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(entities.VerifyResult{
			Status:        entities.PaymentStatusCompleted,
			TransactionID: "vp-5",
			Raw:           map[string]any{"status": "SUCCESS"},
		}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-9").Return(p, nil)
		repo.EXPECT().AppendGatewayResponse(gomock.Any(), "pay-9", "vpayments.verify", gomock.Any()).Return(nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), "pay-9", entities.PaymentStatusProcessing, entities.PaymentStatusCompleted, gomock.Any()).Return(true, nil)
		notifier.EXPECT().PaymentCompleted(gomock.Any(), "reg-9", "pay-9", "vp-5").Return(nil)

		got, err := uc.VerifyAndReconcile(ctx, "pay-9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed, got %s", got.Status)
		}
	})

	t.Run("missing payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockIPaymentRepository(ctrl)
		selector := mocks.NewMockIGatewaySelector(ctrl)
		notifier := mocks.NewMockIRegistrationNotifier(ctrl)
		uc := NewReconciliationUseCase(repo, selector, notifier, NewPaymentLocks())

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, nil)

		if _, err := uc.VerifyAndReconcile(ctx, "missing"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestPaymentLocksSerialize(t *testing.T) {
	locks := NewPaymentLocks()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("pay-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 serialized increments, got %d", counter)
	}
}
