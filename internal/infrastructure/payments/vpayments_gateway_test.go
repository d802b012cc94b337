package payments

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
)

func vpaymentsTestGateway() *VPaymentsGateway {
	return NewVPaymentsGateway(entities.GatewayDescriptor{
		Slug:          "vpayments",
		IntegrationID: "srv-42",
		PayURL:        "https://secure.vpayments.co.zw/pay",
	})
}

func TestVPaymentsInitializePayment(t *testing.T) {
	g := vpaymentsTestGateway()
	p := &entities.Payment{
		ID:               "pay-1",
		Amount:           2550,
		Currency:         "USD",
		PaymentReference: "SCE-AAAA",
		Status:           entities.PaymentStatusPending,
	}

	result, err := g.InitializePayment(context.Background(), p, entities.InitOptions{ReturnURL: "https://expo.test/return"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Kind != entities.InitResultRedirect {
		t.Fatalf("expected redirect result, got %s", result.Kind)
	}
	if p.Status != entities.PaymentStatusProcessing {
		t.Fatalf("expected in-memory processing after handoff, got %s", p.Status)
	}

	// The path segment is the base64 of the encoded transaction parameters.
	blob := result.RedirectURL[strings.LastIndex(result.RedirectURL, "/")+1:]
	decoded, err := base64.URLEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("redirect blob is not base64: %v", err)
	}
	params, err := url.ParseQuery(string(decoded))
	if err != nil {
		t.Fatalf("decoded blob is not a query string: %v", err)
	}
	if params.Get("reference") != "SCE-AAAA" || params.Get("amount") != "25.50" {
		t.Fatalf("unexpected params: %v", params)
	}
	if params.Get("serverId") != "srv-42" {
		t.Fatalf("expected server id in params, got %v", params)
	}
}

func TestVPaymentsHandleWebhook(t *testing.T) {
	g := vpaymentsTestGateway()

	t.Run("forwarded success is record-only", func(t *testing.T) {
		result, err := g.HandleWebhook(context.Background(), entities.WebhookPayload{
			Params: map[string]string{"reference": "SCE-AAAA", "status": "SUCCESS", "serverId": "srv-42"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != entities.PaymentStatusProcessing {
			t.Fatalf("forwarded success must not propose completion, got %s", result.Status)
		}
		if result.Channel != entities.ChannelRedirect {
			t.Fatalf("expected redirect channel, got %s", result.Channel)
		}
		if result.Raw["status"] != "SUCCESS" {
			t.Fatalf("expected native status in evidence, got %v", result.Raw)
		}
	})

	t.Run("forwarded cancel is terminal", func(t *testing.T) {
		result, err := g.HandleWebhook(context.Background(), entities.WebhookPayload{
			Params: map[string]string{"reference": "SCE-AAAA", "status": "CANCELLED", "serverId": "srv-42"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != entities.PaymentStatusCancelled {
			t.Fatalf("expected cancelled, got %s", result.Status)
		}
	})

	t.Run("forwarded decline is terminal", func(t *testing.T) {
		result, err := g.HandleWebhook(context.Background(), entities.WebhookPayload{
			Params: map[string]string{"reference": "SCE-AAAA", "status": "DECLINED"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != entities.PaymentStatusFailed {
			t.Fatalf("expected failed, got %s", result.Status)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := g.HandleWebhook(context.Background(), entities.WebhookPayload{
			Params: map[string]string{"reference": "SCE-AAAA"},
		})
		if !errors.Is(err, entities.ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload, got %v", err)
		}
	})

	t.Run("foreign server id", func(t *testing.T) {
		_, err := g.HandleWebhook(context.Background(), entities.WebhookPayload{
			Params: map[string]string{"reference": "SCE-AAAA", "status": "SUCCESS", "serverId": "other"},
		})
		if !errors.Is(err, entities.ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload, got %v", err)
		}
	})
}

func TestVPaymentsVerifyPayment(t *testing.T) {
	g := vpaymentsTestGateway()

	t.Run("never initialized", func(t *testing.T) {
		p := &entities.Payment{ID: "pay-1", Gateway: "vpayments"}
		if _, err := g.VerifyPayment(context.Background(), p); !errors.Is(err, entities.ErrMissingCorrelationData) {
			t.Fatalf("expected ErrMissingCorrelationData, got %v", err)
		}
	})

	t.Run("initialized but no forwarded result yet", func(t *testing.T) {
		p := &entities.Payment{
			ID:      "pay-1",
			Gateway: "vpayments",
			Status:  entities.PaymentStatusProcessing,
			GatewayResponse: entities.GatewayResponse{
				"vpayments.initialization": {"redirect_url": "https://secure.vpayments.co.zw/pay/abc"},
			},
		}
		result, err := g.VerifyPayment(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != entities.PaymentStatusProcessing {
			t.Fatalf("expected current status echoed, got %s", result.Status)
		}
	})

	t.Run("stored success promotes to completed", func(t *testing.T) {
		p := &entities.Payment{
			ID:      "pay-1",
			Gateway: "vpayments",
			Status:  entities.PaymentStatusProcessing,
			GatewayResponse: entities.GatewayResponse{
				"vpayments.initialization": {"redirect_url": "https://secure.vpayments.co.zw/pay/abc"},
				"vpayments.redirect":       {"status": "SUCCESS", "transaction_id": "vp-5"},
			},
		}
		result, err := g.VerifyPayment(context.Background(), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != entities.PaymentStatusCompleted || result.TransactionID != "vp-5" {
			t.Fatalf("unexpected result: %+v", result)
		}
	})
}

func TestVPaymentsRefundPayment(t *testing.T) {
	g := vpaymentsTestGateway()
	p := &entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted}

	if _, err := g.RefundPayment(context.Background(), p, 1000); !errors.Is(err, entities.ErrRefundUnsupported) {
		t.Fatalf("expected ErrRefundUnsupported, got %v", err)
	}
}
