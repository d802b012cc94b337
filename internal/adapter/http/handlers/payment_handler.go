package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/http/dto/request"
	response "github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/http/dto/response"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for registration payments.

type PaymentHandler struct {
	payments  usecase.IPaymentUseCase
	reconcile usecase.IReconciliationUseCase
	refunds   usecase.IRefundUseCase
}

func NewPaymentHandler(payments usecase.IPaymentUseCase, reconcile usecase.IReconciliationUseCase, refunds usecase.IRefundUseCase) *PaymentHandler {
	return &PaymentHandler{payments: payments, reconcile: reconcile, refunds: refunds}
}

// CreatePayment creates a payment for a registration and initiates it with
// the chosen gateway.
//
//	@Summary      Create and initiate a payment
//	@Tags         payments
//	@Accept       json
//	@Produce      json
//	@Param        registration_id  path      string                           true  "Registration ID"
//	@Param        payload          body      request.PaymentInitiationRequest true  "Initiation parameters"
//	@Success      200              {object}  response.PaymentInitiationResponse
//	@Failure      400              {object}  pkg.HTTPError
//	@Failure      404              {object}  pkg.HTTPError
//	@Router       /registrations/{registration_id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	registrationID := c.Param("registration_id")
	log.Printf("[payment][handler] create start registration_id=%s", registrationID)

	var body request.PaymentInitiationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("[payment][handler] invalid payload registration_id=%s err=%v", registrationID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	p, result, err := h.payments.CreateAndInitiate(c.Request.Context(), registrationID, usecase.InitiationRequest{
		Gateway:   body.Gateway,
		ReturnURL: body.ReturnURL,
		CancelURL: body.CancelURL,
		Currency:  body.Currency,
	})
	if err != nil {
		log.Printf("[payment][handler] create failed registration_id=%s err=%v", registrationID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success registration_id=%s payment_id=%s gateway=%s kind=%s", registrationID, p.ID, p.Gateway, result.Kind)

	c.JSON(http.StatusOK, response.FromInitiation(p, result))
}

// GetPayment returns a payment by its identifier.
//
//	@Summary      Get a payment
//	@Tags         payments
//	@Produce      json
//	@Param        payment_id  path      string  true  "Payment ID"
//	@Success      200         {object}  response.PaymentResponse
//	@Failure      404         {object}  pkg.HTTPError
//	@Router       /payments/{payment_id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	p, err := h.payments.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListPaymentsByRegistration returns every payment attempt for a registration.
//
//	@Summary      List payments for a registration
//	@Tags         payments
//	@Produce      json
//	@Param        registration_id  path      string  true  "Registration ID"
//	@Success      200              {array}   response.PaymentResponse
//	@Failure      400              {object}  pkg.HTTPError
//	@Router       /registrations/{registration_id}/payments [get]
func (h *PaymentHandler) ListPaymentsByRegistration(c *gin.Context) {
	registrationID := c.Param("registration_id")

	payments, err := h.payments.ListByRegistrationID(c.Request.Context(), registrationID)
	if err != nil {
		log.Printf("[payment][handler] list failed registration_id=%s err=%v", registrationID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// VerifyPayment queries the provider for the current status and reconciles it.
//
//	@Summary      Verify a payment against the provider
//	@Tags         payments
//	@Produce      json
//	@Param        payment_id  path      string  true  "Payment ID"
//	@Success      200         {object}  response.PaymentResponse
//	@Failure      404         {object}  pkg.HTTPError
//	@Failure      409         {object}  pkg.HTTPError
//	@Router       /payments/{payment_id}/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] verify start payment_id=%s", paymentID)

	p, err := h.reconcile.VerifyAndReconcile(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] verify failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] verify success payment_id=%s status=%s", paymentID, p.Status)

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// RefundPayment issues a partial or full refund.
//
//	@Summary      Refund a payment
//	@Tags         payments
//	@Accept       json
//	@Produce      json
//	@Param        payment_id  path      string                true  "Payment ID"
//	@Param        payload     body      request.RefundRequest true  "Refund amount in minor units"
//	@Success      200         {object}  response.RefundResponse
//	@Failure      400         {object}  pkg.HTTPError
//	@Failure      409         {object}  pkg.HTTPError
//	@Failure      422         {object}  pkg.HTTPError
//	@Router       /payments/{payment_id}/refunds [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] refund start payment_id=%s", paymentID)

	var body request.RefundRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("[payment][handler] invalid refund payload payment_id=%s err=%v", paymentID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	p, result, err := h.refunds.Refund(c.Request.Context(), paymentID, body.AmountMinorUnits)
	if err != nil {
		log.Printf("[payment][handler] refund failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] refund success payment_id=%s refund_id=%s status=%s", paymentID, result.RefundID, p.Status)

	c.JSON(http.StatusOK, response.FromRefund(p, result))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidRegistrationID), errors.Is(err, usecase.ErrInvalidRefundAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnsupportedGateway):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_GATEWAY", "Unsupported payment gateway", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRegistrationNotFound):
		return pkg.NewDomainErrorSimple("REGISTRATION_NOT_FOUND", "Registration not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRegistrationNotOpen):
		return pkg.NewDomainErrorSimple("REGISTRATION_NOT_OPEN", "Registration is not open for payment", http.StatusConflict)
	case errors.Is(err, entities.ErrAlreadyCompleted):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_SETTLED", "Payment already reached a terminal state", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotRefundable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_REFUNDABLE", "Payment is not in a refundable state", http.StatusConflict)
	case errors.Is(err, entities.ErrAmountExceedsCaptured):
		return pkg.NewDomainErrorSimple("REFUND_AMOUNT_EXCEEDS_CAPTURED", "Refund amount exceeds the remaining captured amount", http.StatusBadRequest)
	case errors.Is(err, entities.ErrRefundUnsupported):
		return pkg.NewDomainErrorSimple("REFUND_UNSUPPORTED", "This gateway does not support refunds", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrMissingCorrelationData):
		return pkg.NewDomainErrorSimple("MISSING_CORRELATION_DATA", "Payment lacks the provider correlation data required for verification", http.StatusConflict)
	case errors.Is(err, entities.ErrProviderUnavailable):
		return pkg.NewDomainErrorSimple("PROVIDER_UNAVAILABLE", "Payment provider is unavailable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
