package payments

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

const (
	paynowDefaultBaseURL  = "https://www.paynow.co.zw"
	paynowInitiatePath    = "/interface/initiatetransaction"
	paynowRequestTimeout  = 30 * time.Second
	paynowResponseOk      = "ok"
	paynowResponseError   = "error"
	paynowOutgoingStatus  = "Message"
	paynowAdditionalsInfo = "Career expo registration"
)

// PaynowGateway is the polling provider class: a regional mobile-money
// aggregator whose create-order call returns a browser URL for the payer and
// a poll URL for the merchant. Every message in both directions carries an
// uppercase SHA512 hash over the field values plus the integration key.
// Confirmation may arrive through the poll URL, through the resulturl
// webhook, or both, in any order; the adapter never finalizes the payment.
type PaynowGateway struct {
	descriptor entities.GatewayDescriptor
	httpClient *http.Client
}

var _ interfaces.IPaymentGateway = (*PaynowGateway)(nil)

func NewPaynowGateway(descriptor entities.GatewayDescriptor) *PaynowGateway {
	if descriptor.BaseURL == "" {
		descriptor.BaseURL = paynowDefaultBaseURL
	}
	return &PaynowGateway{
		descriptor: descriptor,
		httpClient: &http.Client{Timeout: paynowRequestTimeout},
	}
}

func (g *PaynowGateway) Descriptor() entities.GatewayDescriptor { return g.descriptor }

// InitializePayment posts the create-order message. On success the provider
// requires the caller to treat the order as in flight immediately, so this is
// the one adapter write of the transitional pending -> processing status; the
// initiation usecase persists it. Terminal transitions stay with the
// coordinator.
func (g *PaynowGateway) InitializePayment(ctx context.Context, p *entities.Payment, opts entities.InitOptions) (entities.InitResult, error) {
	log.Printf("[payment][gateway][paynow] init start payment_id=%s reference=%s", p.ID, p.PaymentReference)

	fields := []paynowField{
		{"id", g.descriptor.IntegrationID},
		{"reference", p.PaymentReference},
		{"amount", fmt.Sprintf("%.2f", minorToMajor(p.Amount))},
		{"additionalinfo", paynowAdditionalsInfo},
		{"returnurl", opts.ReturnURL},
		{"resulturl", g.descriptor.CallbackURL},
		{"status", paynowOutgoingStatus},
	}
	body := g.encodeSigned(fields)

	values, err := g.post(ctx, g.descriptor.BaseURL+paynowInitiatePath, body)
	if err != nil {
		return entities.InitResult{}, err
	}

	if !strings.EqualFold(values.get("status"), paynowResponseOk) {
		reason := values.get("error")
		log.Printf("[payment][gateway][paynow] init rejected payment_id=%s error=%q", p.ID, reason)
		return entities.InitResult{}, fmt.Errorf("%w: paynow rejected initiation: %s", entities.ErrProviderUnavailable, reason)
	}
	if err := g.verifyHash(values); err != nil {
		return entities.InitResult{}, err
	}

	browserURL := values.get("browserurl")
	pollURL := values.get("pollurl")
	if browserURL == "" || pollURL == "" {
		return entities.InitResult{}, fmt.Errorf("%w: paynow response missing urls", entities.ErrMalformedPayload)
	}

	// The provider considers the order in flight from this point.
	if p.Status == entities.PaymentStatusPending {
		p.Status = entities.PaymentStatusProcessing
	}

	log.Printf("[payment][gateway][paynow] init success payment_id=%s", p.ID)
	return entities.InitResult{
		Kind:        entities.InitResultRedirect,
		RedirectURL: browserURL,
		Evidence: map[string]any{
			"browser_url": browserURL,
			"poll_url":    pollURL,
		},
	}, nil
}

// VerifyPayment polls the status endpoint recorded at initialization.
func (g *PaynowGateway) VerifyPayment(ctx context.Context, p *entities.Payment) (entities.VerifyResult, error) {
	pollURL, ok := p.GatewayResponse.Lookup(p.EvidenceNamespace(entities.ChannelInitialization), "poll_url")
	if !ok {
		log.Printf("[payment][gateway][paynow] verify without poll url payment_id=%s", p.ID)
		return entities.VerifyResult{}, fmt.Errorf("%w: no poll url recorded for payment %s", entities.ErrMissingCorrelationData, p.ID)
	}

	values, err := g.post(ctx, pollURL, "")
	if err != nil {
		return entities.VerifyResult{}, err
	}
	if err := g.verifyHash(values); err != nil {
		return entities.VerifyResult{}, err
	}

	native := values.get("status")
	status := mapPaynowStatus(native)
	log.Printf("[payment][gateway][paynow] verify success payment_id=%s native_status=%q status=%s", p.ID, native, status)
	return entities.VerifyResult{
		Status:        status,
		TransactionID: values.get("paynowreference"),
		Raw:           values.toMap(),
	}, nil
}

// RefundPayment always fails: the aggregator exposes no refund API and a
// silent no-op would hide money.
func (g *PaynowGateway) RefundPayment(ctx context.Context, p *entities.Payment, amountMinorUnits int64) (entities.RefundResult, error) {
	return entities.RefundResult{}, fmt.Errorf("%w: paynow", entities.ErrRefundUnsupported)
}

// HandleWebhook validates the resulturl message hash before reading any
// field. Delivery order relative to polling is unspecified; the result is a
// normalized proposal only.
func (g *PaynowGateway) HandleWebhook(ctx context.Context, payload entities.WebhookPayload) (entities.WebhookResult, error) {
	values, err := parsePaynowMessage(string(payload.RawBody))
	if err != nil {
		return entities.WebhookResult{}, fmt.Errorf("%w: paynow result body", entities.ErrMalformedPayload)
	}
	if err := g.verifyHash(values); err != nil {
		return entities.WebhookResult{}, err
	}

	reference := values.get("reference")
	if reference == "" {
		return entities.WebhookResult{}, fmt.Errorf("%w: paynow result without reference", entities.ErrMalformedPayload)
	}

	native := values.get("status")
	status := mapPaynowStatus(native)
	log.Printf("[payment][gateway][paynow] webhook verified reference=%s native_status=%q status=%s", reference, native, status)
	return entities.WebhookResult{
		PaymentReference: reference,
		Status:           status,
		TransactionID:    values.get("paynowreference"),
		Channel:          entities.ChannelWebhook,
		Raw:              values.toMap(),
	}, nil
}

// post sends a form-encoded message and parses the form-encoded answer with
// field order preserved (the hash covers values in message order).
func (g *PaynowGateway) post(ctx context.Context, endpoint, body string) (paynowValues, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: paynow request: %v", entities.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][gateway][paynow] request failed endpoint=%s err=%v", endpoint, err)
		return nil, fmt.Errorf("%w: paynow request: %v", entities.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: paynow response read: %v", entities.ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[payment][gateway][paynow] unexpected http status endpoint=%s status=%d", endpoint, resp.StatusCode)
		return nil, fmt.Errorf("%w: paynow http %d", entities.ErrProviderUnavailable, resp.StatusCode)
	}

	values, err := parsePaynowMessage(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: paynow response body", entities.ErrMalformedPayload)
	}
	return values, nil
}

// encodeSigned appends the hash field and form-encodes the message. The hash
// covers values in message order, so the body is built by hand rather than
// through url.Values (which sorts keys).
func (g *PaynowGateway) encodeSigned(fields []paynowField) string {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(f.value)
	}
	sb.WriteString(g.descriptor.IntegrationKey)
	sum := sha512.Sum512([]byte(sb.String()))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))

	var form strings.Builder
	for i, f := range fields {
		if i > 0 {
			form.WriteByte('&')
		}
		form.WriteString(url.QueryEscape(f.key))
		form.WriteByte('=')
		form.WriteString(url.QueryEscape(f.value))
	}
	form.WriteString("&hash=")
	form.WriteString(hash)
	return form.String()
}

// verifyHash recomputes the message hash over the values in received order.
func (g *PaynowGateway) verifyHash(values paynowValues) error {
	received := values.get("hash")
	if received == "" {
		return fmt.Errorf("%w: paynow message without hash", entities.ErrInvalidSignature)
	}

	var sb strings.Builder
	for _, f := range values {
		if strings.EqualFold(f.key, "hash") {
			continue
		}
		sb.WriteString(f.value)
	}
	sb.WriteString(g.descriptor.IntegrationKey)
	sum := sha512.Sum512([]byte(sb.String()))
	expected := strings.ToUpper(hex.EncodeToString(sum[:]))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToUpper(received))) != 1 {
		log.Printf("[payment][gateway][paynow] hash mismatch reference=%q", values.get("reference"))
		return entities.ErrInvalidSignature
	}
	return nil
}

// mapPaynowStatus is a total mapping from the aggregator's status strings;
// anything unrecognized lands in the pending bucket.
func mapPaynowStatus(native string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(native)) {
	case "paid", "delivered", "awaiting delivery":
		return entities.PaymentStatusCompleted
	case "created", "sent":
		return entities.PaymentStatusProcessing
	case "cancelled":
		return entities.PaymentStatusCancelled
	case "failed", "disputed":
		return entities.PaymentStatusFailed
	case "refunded":
		return entities.PaymentStatusRefunded
	default:
		return entities.PaymentStatusPending
	}
}

// paynowField / paynowValues keep the wire field order, which url.Values
// cannot do and the hash depends on.

type paynowField struct {
	key   string
	value string
}

type paynowValues []paynowField

func (v paynowValues) get(key string) string {
	for _, f := range v {
		if strings.EqualFold(f.key, key) {
			return f.value
		}
	}
	return ""
}

func (v paynowValues) toMap() map[string]any {
	m := make(map[string]any, len(v))
	for _, f := range v {
		m[strings.ToLower(f.key)] = f.value
	}
	return m
}

func parsePaynowMessage(body string) (paynowValues, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty message")
	}
	var values paynowValues
	for _, pair := range strings.Split(body, "&") {
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, err
		}
		values = append(values, paynowField{key: key, value: value})
	}
	return values, nil
}
