package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives provider confirmation callbacks. One route serves
// every gateway; the path segment picks the adapter and the adapter owns
// payload parsing and signature verification.

type WebhookHandler struct {
	reconcile usecase.IReconciliationUseCase
}

func NewWebhookHandler(reconcile usecase.IReconciliationUseCase) *WebhookHandler {
	return &WebhookHandler{reconcile: reconcile}
}

// HandleWebhook processes a gateway confirmation callback.
//
// Response contract, chosen for provider retry semantics:
//   - invalid signature or malformed payload: 400, so a misconfigured
//     provider surfaces in its own delivery logs
//   - unknown payment reference: 200, so the provider stops retrying an
//     event we can never attribute
//   - anything transient (storage, provider lookups): 500, inviting a retry
//
//	@Summary      Receive a gateway webhook
//	@Tags         webhooks
//	@Accept       json
//	@Produce      json
//	@Param        gateway  path      string  true  "Gateway slug"
//	@Success      200      {object}  map[string]string
//	@Failure      400      {object}  pkg.HTTPError
//	@Router       /webhooks/{gateway} [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	gateway := c.Param("gateway")

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][webhook] body read failed gateway=%s err=%v", gateway, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	payload := entities.WebhookPayload{
		RawBody: raw,
		Headers: flattenHeaders(c.Request.Header),
		Params:  flattenQuery(c),
	}

	p, err := h.reconcile.HandleWebhook(c.Request.Context(), gateway, payload)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUnknownReference):
			// Acknowledged on purpose: retrying cannot make the reference known.
			log.Printf("[payment][webhook] unknown reference acknowledged gateway=%s", gateway)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		case errors.Is(err, entities.ErrInvalidSignature):
			log.Printf("[payment][webhook] signature rejected gateway=%s", gateway)
			appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature verification failed", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		case errors.Is(err, entities.ErrMalformedPayload):
			log.Printf("[payment][webhook] malformed payload gateway=%s err=%v", gateway, err)
			appErr := pkg.NewDomainErrorSimple("MALFORMED_PAYLOAD", "Webhook payload could not be parsed", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		case errors.Is(err, entities.ErrUnsupportedGateway):
			appErr := pkg.NewDomainErrorSimple("UNSUPPORTED_GATEWAY", "Unsupported payment gateway", http.StatusNotFound)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		default:
			log.Printf("[payment][webhook] processing failed gateway=%s err=%v", gateway, err)
			appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "payment_status": string(p.Status)})
}

// flattenHeaders lowercases header names so adapters can look up
// provider-documented names like x-signature without canonicalization rules.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}

func flattenQuery(c *gin.Context) map[string]string {
	out := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
