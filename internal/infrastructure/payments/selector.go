package payments

import (
	"fmt"
	"log"
	"strings"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase/interfaces"
)

// GatewaySelector resolves provider identifiers (catalog slug or known alias)
// to live adapter instances. The set of providers is small and fixed at build
// time; resolution fails closed on anything it does not recognize.

type GatewaySelector struct {
	adapters []interfaces.IPaymentGateway
}

var _ interfaces.IGatewaySelector = (*GatewaySelector)(nil)

func NewGatewaySelector(adapters ...interfaces.IPaymentGateway) *GatewaySelector {
	return &GatewaySelector{adapters: adapters}
}

// Resolve returns the adapter addressed by identifier. Unknown identifiers
// are fatal to the initiating request and are never defaulted to another
// provider.
func (s *GatewaySelector) Resolve(identifier string) (interfaces.IPaymentGateway, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", entities.ErrUnsupportedGateway)
	}
	for _, a := range s.adapters {
		if a.Descriptor().Matches(id) {
			return a, nil
		}
	}
	log.Printf("[payment][selector] unknown gateway identifier=%q", identifier)
	return nil, fmt.Errorf("%w: %q", entities.ErrUnsupportedGateway, identifier)
}
