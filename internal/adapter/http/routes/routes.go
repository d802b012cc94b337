package routes

import (
	"log"
	"strconv"

	_ "github.com/iamrobbiejr/sahwi-career-expo-api-sub001/docs" // swagger spec registration
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/http/handlers"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/persistence/repository"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/infrastructure/database"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/infrastructure/notifications"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/infrastructure/payments"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	registrationRepo := repository.NewRegistrationDynamoRepository(ddb)

	selector := payments.NewGatewaySelectorFromEnv()
	notifier := notifications.NewRegistrationNotifier(registrationRepo)
	locks := usecase.NewPaymentLocks()

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, registrationRepo, selector, locks)
	reconciliationUseCase := usecase.NewReconciliationUseCase(paymentRepo, selector, notifier, locks)
	refundUseCase := usecase.NewRefundUseCase(paymentRepo, selector, locks)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, reconciliationUseCase, refundUseCase)
	webhookHandler := handlers.NewWebhookHandler(reconciliationUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
