package routes

import (
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRegistrations = "/registrations"
	PathPayments      = "/payments"
	PathWebhooks      = "/webhooks"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	registrations := rg.Group(PathRegistrations)
	{
		registrations.POST("/:registration_id/payments", paymentHandler.CreatePayment)
		registrations.GET("/:registration_id/payments", paymentHandler.ListPaymentsByRegistration)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:payment_id", paymentHandler.GetPayment)
		payments.POST("/:payment_id/verify", paymentHandler.VerifyPayment)
		payments.POST("/:payment_id/refunds", paymentHandler.RefundPayment)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		// One endpoint per gateway slug; the adapter owns signature checks.
		webhooks.POST("/:gateway", webhookHandler.HandleWebhook)
	}
}
