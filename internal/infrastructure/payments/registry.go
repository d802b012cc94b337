package payments

import (
	"log"
	"os"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

// NewGatewaySelectorFromEnv wires every configured provider adapter.
//
// Supported env vars:
//   - MERCADOPAGO_ACCESS_TOKEN, MERCADOPAGO_WEBHOOK_SECRET, MERCADOPAGO_NOTIFICATION_URL
//   - PAYNOW_INTEGRATION_ID, PAYNOW_INTEGRATION_KEY, PAYNOW_RESULT_URL, PAYNOW_BASE_URL
//   - VPAYMENTS_SERVER_ID, VPAYMENTS_PAY_URL
//
// A provider with no configuration at all is skipped with a log line; an
// unconfigured provider is then simply an unsupported gateway at request time.
func NewGatewaySelectorFromEnv() *GatewaySelector {
	var adapters []interfaces.IPaymentGateway

	mpDescriptor := entities.GatewayDescriptor{
		Slug:             "mercadopago",
		Name:             "Mercado Pago Checkout",
		Aliases:          []string{"mp", "mercado-pago", "checkout-pro"},
		AccessToken:      os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		WebhookSecret:    os.Getenv("MERCADOPAGO_WEBHOOK_SECRET"),
		CallbackURL:      os.Getenv("MERCADOPAGO_NOTIFICATION_URL"),
		SupportsRefunds:  true,
		SupportsWebhooks: true,
	}
	if mp, err := NewMercadoPagoGateway(mpDescriptor); err != nil {
		log.Printf("[payment][registry] mercadopago not configured: %v", err)
	} else {
		adapters = append(adapters, mp)
	}

	if id := os.Getenv("PAYNOW_INTEGRATION_ID"); id != "" {
		adapters = append(adapters, NewPaynowGateway(entities.GatewayDescriptor{
			Slug:             "paynow",
			Name:             "Paynow Zimbabwe",
			Aliases:          []string{"paynow-zw", "paynow-mobile"},
			IntegrationID:    id,
			IntegrationKey:   os.Getenv("PAYNOW_INTEGRATION_KEY"),
			BaseURL:          os.Getenv("PAYNOW_BASE_URL"),
			CallbackURL:      os.Getenv("PAYNOW_RESULT_URL"),
			SupportsWebhooks: true,
			SupportsPolling:  true,
		}))
	} else {
		log.Printf("[payment][registry] paynow not configured: missing PAYNOW_INTEGRATION_ID")
	}

	if serverID := os.Getenv("VPAYMENTS_SERVER_ID"); serverID != "" {
		adapters = append(adapters, NewVPaymentsGateway(entities.GatewayDescriptor{
			Slug:          "vpayments",
			Name:          "V-Payments",
			Aliases:       []string{"vpay", "v-payments"},
			IntegrationID: serverID,
			PayURL:        os.Getenv("VPAYMENTS_PAY_URL"),
		}))
	} else {
		log.Printf("[payment][registry] vpayments not configured: missing VPAYMENTS_SERVER_ID")
	}

	log.Printf("[payment][registry] %d gateway adapter(s) configured", len(adapters))
	return NewGatewaySelector(adapters...)
}
