package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

// Narrow views over the SDK clients; the real clients satisfy these and the
// tests substitute fakes.

type mpPreferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type mpPaymentAPI interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type mpRefundAPI interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*refund.Response, error)
}

// MercadoPagoGateway is the hosted-checkout provider class: initialization
// creates a remote checkout preference and hands back its URL, confirmation
// arrives on a signed webhook, and a synchronous re-fetch by provider payment
// id backs the verify operation. Refunds go through the SDK refund client.
type MercadoPagoGateway struct {
	descriptor  entities.GatewayDescriptor
	preferences mpPreferenceAPI
	payments    mpPaymentAPI
	refunds     mpRefundAPI
	mockMode    bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(descriptor entities.GatewayDescriptor) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway][mercadopago] mock mode enabled")
		return &MercadoPagoGateway{descriptor: descriptor, mockMode: true}, nil
	}

	if descriptor.AccessToken == "" {
		log.Printf("[payment][gateway][mercadopago] missing access token")
		return nil, fmt.Errorf("mercadopago gateway: missing access token")
	}

	cfg, err := config.New(descriptor.AccessToken)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway][mercadopago] client initialized")

	return &MercadoPagoGateway{
		descriptor:  descriptor,
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		refunds:     refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) Descriptor() entities.GatewayDescriptor { return g.descriptor }

// InitializePayment creates a checkout preference carrying the payment
// reference as external_reference; the provider echoes it back on every
// confirmation so reconciliation can correlate.
func (g *MercadoPagoGateway) InitializePayment(ctx context.Context, p *entities.Payment, opts entities.InitOptions) (entities.InitResult, error) {
	log.Printf("[payment][gateway][mercadopago] init start payment_id=%s reference=%s", p.ID, p.PaymentReference)

	if g.mockMode {
		sessionID := "mock-pref-" + p.ID
		checkoutURL := "https://sandbox.mercadopago.local/checkout/" + sessionID
		return entities.InitResult{
			Kind:        entities.InitResultCheckout,
			CheckoutURL: checkoutURL,
			SessionID:   sessionID,
			Evidence:    map[string]any{"session_id": sessionID, "checkout_url": checkoutURL, "mock": true},
		}, nil
	}

	currency := p.Currency
	if opts.Currency != "" {
		currency = opts.Currency
	}

	req := preference.Request{
		ExternalReference: p.PaymentReference,
		NotificationURL:   g.descriptor.CallbackURL,
		Items: []preference.ItemRequest{
			{
				ID:         p.ID,
				Title:      fmt.Sprintf("Event registration %s", p.RegistrationID),
				Quantity:   1,
				CurrencyID: currency,
				UnitPrice:  minorToMajor(p.Amount),
			},
		},
	}
	if opts.ReturnURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: opts.ReturnURL,
			Pending: opts.ReturnURL,
			Failure: firstNonEmpty(opts.CancelURL, opts.ReturnURL),
		}
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] preference create failed payment_id=%s err=%v", p.ID, err)
		return entities.InitResult{}, fmt.Errorf("%w: mercadopago preference create: %v", entities.ErrProviderUnavailable, err)
	}

	checkoutURL := resp.InitPoint
	if strings.HasPrefix(g.descriptor.AccessToken, "TEST-") && resp.SandboxInitPoint != "" {
		checkoutURL = resp.SandboxInitPoint
	}

	log.Printf("[payment][gateway][mercadopago] init success payment_id=%s session_id=%s", p.ID, resp.ID)
	return entities.InitResult{
		Kind:        entities.InitResultCheckout,
		CheckoutURL: checkoutURL,
		SessionID:   resp.ID,
		Evidence: map[string]any{
			"session_id":   resp.ID,
			"checkout_url": checkoutURL,
		},
	}, nil
}

// VerifyPayment re-fetches the provider-side payment recorded by the webhook;
// before any webhook has landed it needs at least the initialization session
// on record to know the order exists at all.
func (g *MercadoPagoGateway) VerifyPayment(ctx context.Context, p *entities.Payment) (entities.VerifyResult, error) {
	if g.mockMode {
		return entities.VerifyResult{Status: entities.PaymentStatusCompleted, TransactionID: "mock-" + p.ID, Raw: map[string]any{"mock": true}}, nil
	}

	txnID := p.GatewayTxnID
	if txnID == "" {
		txnID, _ = p.GatewayResponse.Lookup(p.EvidenceNamespace(entities.ChannelWebhook), "payment_id")
	}

	if txnID == "" {
		if _, ok := p.GatewayResponse.Lookup(p.EvidenceNamespace(entities.ChannelInitialization), "session_id"); !ok {
			log.Printf("[payment][gateway][mercadopago] verify without correlation data payment_id=%s", p.ID)
			return entities.VerifyResult{}, fmt.Errorf("%w: no checkout session recorded for payment %s", entities.ErrMissingCorrelationData, p.ID)
		}
		// Session exists but the provider has not reported a payment yet.
		return entities.VerifyResult{Status: entities.PaymentStatusPending, Raw: map[string]any{"awaiting_webhook": true}}, nil
	}

	id, err := strconv.Atoi(txnID)
	if err != nil {
		return entities.VerifyResult{}, fmt.Errorf("%w: non-numeric gateway transaction id %q", entities.ErrMissingCorrelationData, txnID)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] verify fetch failed payment_id=%s gateway_txn=%s err=%v", p.ID, txnID, err)
		return entities.VerifyResult{}, fmt.Errorf("%w: mercadopago payment fetch: %v", entities.ErrProviderUnavailable, err)
	}

	status := mapMercadoPagoStatus(resp.Status)
	log.Printf("[payment][gateway][mercadopago] verify success payment_id=%s native_status=%s status=%s", p.ID, resp.Status, status)
	return entities.VerifyResult{
		Status:        status,
		TransactionID: strconv.Itoa(resp.ID),
		Raw: map[string]any{
			"payment_id":         strconv.Itoa(resp.ID),
			"status":             resp.Status,
			"status_detail":      resp.StatusDetail,
			"external_reference": resp.ExternalReference,
			"transaction_amount": resp.TransactionAmount,
		},
	}, nil
}

func (g *MercadoPagoGateway) RefundPayment(ctx context.Context, p *entities.Payment, amountMinorUnits int64) (entities.RefundResult, error) {
	if g.mockMode {
		return entities.RefundResult{RefundID: "mock-refund-" + p.ID, Status: "approved", Amount: amountMinorUnits, Raw: map[string]any{"mock": true}}, nil
	}

	if p.GatewayTxnID == "" {
		return entities.RefundResult{}, fmt.Errorf("%w: no gateway transaction recorded for payment %s", entities.ErrMissingCorrelationData, p.ID)
	}
	paymentID, err := strconv.Atoi(p.GatewayTxnID)
	if err != nil {
		return entities.RefundResult{}, fmt.Errorf("%w: non-numeric gateway transaction id %q", entities.ErrMissingCorrelationData, p.GatewayTxnID)
	}

	var resp *refund.Response
	if amountMinorUnits < p.Amount {
		resp, err = g.refunds.CreatePartialRefund(ctx, paymentID, minorToMajor(amountMinorUnits))
	} else {
		resp, err = g.refunds.Create(ctx, paymentID)
	}
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] refund failed payment_id=%s gateway_txn=%s err=%v", p.ID, p.GatewayTxnID, err)
		return entities.RefundResult{}, fmt.Errorf("%w: mercadopago refund: %v", entities.ErrProviderUnavailable, err)
	}

	log.Printf("[payment][gateway][mercadopago] refund success payment_id=%s refund_id=%d status=%s", p.ID, resp.ID, resp.Status)
	return entities.RefundResult{
		RefundID: strconv.Itoa(resp.ID),
		Status:   resp.Status,
		Amount:   amountMinorUnits,
		Raw: map[string]any{
			"refund_id": strconv.Itoa(resp.ID),
			"status":    resp.Status,
			"amount":    minorToMajor(amountMinorUnits),
		},
	}, nil
}

// HandleWebhook verifies the x-signature header over the raw request before
// trusting any field, then resolves the reported payment to its external
// reference with a synchronous fetch. Signature failures are fail-closed: no
// state is touched.
func (g *MercadoPagoGateway) HandleWebhook(ctx context.Context, payload entities.WebhookPayload) (entities.WebhookResult, error) {
	var body struct {
		Action string `json:"action"`
		Type   string `json:"type"`
		Data   struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload.RawBody, &body); err != nil || body.Data.ID == "" {
		return entities.WebhookResult{}, fmt.Errorf("%w: mercadopago event body", entities.ErrMalformedPayload)
	}

	if err := g.verifySignature(payload, body.Data.ID); err != nil {
		return entities.WebhookResult{}, err
	}

	if g.mockMode {
		return entities.WebhookResult{
			PaymentReference: payload.Params["external_reference"],
			Status:           entities.PaymentStatusCompleted,
			TransactionID:    body.Data.ID,
			Channel:          entities.ChannelWebhook,
			Raw:              map[string]any{"payment_id": body.Data.ID, "mock": true},
		}, nil
	}

	id, err := strconv.Atoi(body.Data.ID)
	if err != nil {
		return entities.WebhookResult{}, fmt.Errorf("%w: non-numeric data.id %q", entities.ErrMalformedPayload, body.Data.ID)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway][mercadopago] webhook payment fetch failed gateway_txn=%s err=%v", body.Data.ID, err)
		return entities.WebhookResult{}, fmt.Errorf("%w: mercadopago payment fetch: %v", entities.ErrProviderUnavailable, err)
	}

	status := mapMercadoPagoStatus(resp.Status)
	log.Printf("[payment][gateway][mercadopago] webhook verified gateway_txn=%d native_status=%s status=%s reference=%s", resp.ID, resp.Status, status, resp.ExternalReference)
	return entities.WebhookResult{
		PaymentReference: resp.ExternalReference,
		Status:           status,
		TransactionID:    strconv.Itoa(resp.ID),
		Channel:          entities.ChannelWebhook,
		Raw: map[string]any{
			"payment_id":         strconv.Itoa(resp.ID),
			"action":             body.Action,
			"status":             resp.Status,
			"status_detail":      resp.StatusDetail,
			"transaction_amount": resp.TransactionAmount,
		},
	}, nil
}

// verifySignature checks the x-signature header (ts=...,v1=...) where v1 is
// an HMAC-SHA256 over "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" keyed
// with the per-descriptor webhook secret.
func (g *MercadoPagoGateway) verifySignature(payload entities.WebhookPayload, dataID string) error {
	secret := g.descriptor.WebhookSecret
	if secret == "" {
		return fmt.Errorf("%w: no webhook secret configured", entities.ErrInvalidSignature)
	}

	header := payload.Headers["x-signature"]
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("%w: missing x-signature parts", entities.ErrInvalidSignature)
	}

	manifest := fmt.Sprintf("id:%s;", strings.ToLower(dataID))
	if reqID := payload.Headers["x-request-id"]; reqID != "" {
		manifest += fmt.Sprintf("request-id:%s;", reqID)
	}
	manifest += fmt.Sprintf("ts:%s;", ts)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		log.Printf("[payment][gateway][mercadopago] signature mismatch gateway_txn=%s", dataID)
		return entities.ErrInvalidSignature
	}
	return nil
}

// mapMercadoPagoStatus is a total mapping from the provider's native status
// vocabulary; anything unrecognized lands in the pending bucket.
func mapMercadoPagoStatus(native string) entities.PaymentStatus {
	switch strings.ToLower(native) {
	case "approved":
		return entities.PaymentStatusCompleted
	case "authorized", "in_process", "in_mediation":
		return entities.PaymentStatusProcessing
	case "rejected":
		return entities.PaymentStatusFailed
	case "cancelled", "expired":
		return entities.PaymentStatusCancelled
	case "refunded", "charged_back":
		return entities.PaymentStatusRefunded
	default:
		return entities.PaymentStatusPending
	}
}

// SignWebhookManifest produces the x-signature value the verifier expects.
// Used by webhook simulation in local setups and by the tests.
func SignWebhookManifest(secret, dataID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;", strings.ToLower(dataID))
	if requestID != "" {
		manifest += fmt.Sprintf("request-id:%s;", requestID)
	}
	manifest += fmt.Sprintf("ts:%s;", ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func minorToMajor(amount int64) float64 { return float64(amount) / 100 }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
