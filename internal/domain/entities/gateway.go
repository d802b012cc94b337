package entities

// GatewayDescriptor is the immutable per-deployment configuration of one
// payment provider. Built once from the environment at startup and shared by
// every adapter instance of that provider; never mutated per request.
type GatewayDescriptor struct {
	Slug    string
	Name    string
	Aliases []string

	// Credentials. Not every provider uses every field.
	IntegrationID  string
	IntegrationKey string
	AccessToken    string
	WebhookSecret  string

	// BaseURL / PayURL override the provider endpoints (local test servers).
	BaseURL string
	PayURL  string

	// CallbackURL is this deployment's inbound confirmation endpoint for the
	// provider (notification_url / resulturl).
	CallbackURL string

	SupportsRefunds  bool
	SupportsWebhooks bool
	SupportsPolling  bool
}

// Matches reports whether identifier addresses this descriptor by slug or by
// one of its known aliases. Webhook senders sometimes use a different name
// than the catalog slug.
func (d GatewayDescriptor) Matches(identifier string) bool {
	if identifier == d.Slug {
		return true
	}
	for _, a := range d.Aliases {
		if identifier == a {
			return true
		}
	}
	return false
}
