package payments

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

const vpaymentsDefaultPayURL = "https://secure.vpayments.co.zw/pay"

// VPaymentsGateway is the redirect-only provider class: a card gateway with
// no server-to-server channel at all. Initialization is a deterministic,
// stateless transformation of the transaction parameters into an opaque
// redirect target; confirmation relies entirely on the client forwarding the
// landing-page query parameters back to this API. Forwarded results carry no
// cryptographic guarantee and are treated as lower-trust evidence: declines
// are applied directly, successes only recorded until verify promotes them.
type VPaymentsGateway struct {
	descriptor entities.GatewayDescriptor
}

var _ interfaces.IPaymentGateway = (*VPaymentsGateway)(nil)

func NewVPaymentsGateway(descriptor entities.GatewayDescriptor) *VPaymentsGateway {
	if descriptor.PayURL == "" {
		descriptor.PayURL = vpaymentsDefaultPayURL
	}
	return &VPaymentsGateway{descriptor: descriptor}
}

func (g *VPaymentsGateway) Descriptor() entities.GatewayDescriptor { return g.descriptor }

// InitializePayment builds the hosted-page redirect: transaction parameters
// are URL-encoded and the resulting query string base64-encoded into a path
// segment. There is no session object on the provider side. The client is
// handed off immediately, so the in-memory payment moves to processing.
func (g *VPaymentsGateway) InitializePayment(ctx context.Context, p *entities.Payment, opts entities.InitOptions) (entities.InitResult, error) {
	currency := p.Currency
	if opts.Currency != "" {
		currency = opts.Currency
	}

	params := url.Values{}
	params.Set("reference", p.PaymentReference)
	params.Set("amount", fmt.Sprintf("%.2f", minorToMajor(p.Amount)))
	params.Set("currency", currency)
	params.Set("returnurl", opts.ReturnURL)
	params.Set("serverId", g.descriptor.IntegrationID)

	blob := base64.URLEncoding.EncodeToString([]byte(params.Encode()))
	redirectURL := strings.TrimRight(g.descriptor.PayURL, "/") + "/" + blob

	if p.Status == entities.PaymentStatusPending {
		p.Status = entities.PaymentStatusProcessing
	}

	log.Printf("[payment][gateway][vpayments] init success payment_id=%s reference=%s", p.ID, p.PaymentReference)
	return entities.InitResult{
		Kind:        entities.InitResultRedirect,
		RedirectURL: redirectURL,
		Evidence: map[string]any{
			"redirect_url": redirectURL,
			"server_id":    g.descriptor.IntegrationID,
		},
	}, nil
}

// VerifyPayment re-reads previously stored confirmation evidence; with no
// server channel there is nothing else to ask. A forwarded SUCCESS is
// promoted to completed here, which is the trustworthy answer the
// client-facing verify endpoint returns.
func (g *VPaymentsGateway) VerifyPayment(ctx context.Context, p *entities.Payment) (entities.VerifyResult, error) {
	redirectNS := p.EvidenceNamespace(entities.ChannelRedirect)
	native, ok := p.GatewayResponse.Lookup(redirectNS, "status")
	if !ok {
		if _, initialized := p.GatewayResponse[p.EvidenceNamespace(entities.ChannelInitialization)]; !initialized {
			log.Printf("[payment][gateway][vpayments] verify before initialization payment_id=%s", p.ID)
			return entities.VerifyResult{}, fmt.Errorf("%w: payment %s was never initialized", entities.ErrMissingCorrelationData, p.ID)
		}
		// Initialized but the client has not forwarded a result yet.
		return entities.VerifyResult{Status: p.Status, Raw: map[string]any{"awaiting_redirect_result": true}}, nil
	}

	// The redirect handler parks SUCCESS as evidence only; mapping the stored
	// native status here is what promotes it to completed.
	txnID, _ := p.GatewayResponse.Lookup(redirectNS, "transaction_id")
	status := mapVPaymentsStatus(native)

	log.Printf("[payment][gateway][vpayments] verify payment_id=%s native_status=%q status=%s", p.ID, native, status)
	return entities.VerifyResult{
		Status:        status,
		TransactionID: txnID,
		Raw: map[string]any{
			"status":  native,
			"channel": string(entities.ChannelRedirect),
		},
	}, nil
}

// RefundPayment permanently fails: the provider has no refund API.
func (g *VPaymentsGateway) RefundPayment(ctx context.Context, p *entities.Payment, amountMinorUnits int64) (entities.RefundResult, error) {
	return entities.RefundResult{}, fmt.Errorf("%w: vpayments", entities.ErrRefundUnsupported)
}

// HandleWebhook consumes the client-forwarded landing-page parameters
// {reference, status, serverId}. Non-success outcomes are proposed as
// terminal immediately; SUCCESS stays a processing proposal so only the
// verify path can complete the payment off this low-trust channel.
func (g *VPaymentsGateway) HandleWebhook(ctx context.Context, payload entities.WebhookPayload) (entities.WebhookResult, error) {
	reference := strings.TrimSpace(payload.Params["reference"])
	native := strings.TrimSpace(payload.Params["status"])
	if reference == "" || native == "" {
		return entities.WebhookResult{}, fmt.Errorf("%w: forwarded result needs reference and status", entities.ErrMalformedPayload)
	}

	serverID := payload.Params["serverId"]
	if g.descriptor.IntegrationID != "" && serverID != "" && serverID != g.descriptor.IntegrationID {
		log.Printf("[payment][gateway][vpayments] forwarded result for foreign server id reference=%s server_id=%s", reference, serverID)
		return entities.WebhookResult{}, fmt.Errorf("%w: server id mismatch", entities.ErrMalformedPayload)
	}

	status := mapVPaymentsStatus(native)
	if status == entities.PaymentStatusCompleted {
		// Low-trust channel: record only, never complete from here.
		status = entities.PaymentStatusProcessing
	}

	log.Printf("[payment][gateway][vpayments] forwarded result reference=%s native_status=%q status=%s", reference, native, status)
	return entities.WebhookResult{
		PaymentReference: reference,
		Status:           status,
		TransactionID:    payload.Params["transactionId"],
		Channel:          entities.ChannelRedirect,
		Raw: map[string]any{
			"status":         native,
			"server_id":      serverID,
			"transaction_id": payload.Params["transactionId"],
		},
	}, nil
}

// mapVPaymentsStatus is a total mapping from the gateway's landing-page
// status codes; anything unrecognized lands in the pending bucket.
func mapVPaymentsStatus(native string) entities.PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(native)) {
	case "SUCCESS", "APPROVED":
		return entities.PaymentStatusCompleted
	case "CANCELLED", "CANCELED":
		return entities.PaymentStatusCancelled
	case "FAILED", "DECLINED", "ERROR":
		return entities.PaymentStatusFailed
	case "PENDING", "PROCESSING":
		return entities.PaymentStatusProcessing
	default:
		return entities.PaymentStatusPending
	}
}
