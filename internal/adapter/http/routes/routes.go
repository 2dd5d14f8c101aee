package routes

import (
	"log"
	"os"
	"strconv"

	_ "sisgenius/docs" // This will be auto-generated
	"sisgenius/internal/adapter/http/handlers"
	repository2 "sisgenius/internal/adapter/persistence/repository"
	"sisgenius/internal/adapter/scratch"
	"sisgenius/internal/infrastructure/cache"
	"sisgenius/internal/infrastructure/database"
	"sisgenius/internal/infrastructure/messaging"
	"sisgenius/internal/usecase"
	"sisgenius/internal/usecase/interfaces"

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

	orderRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	sequenceRepo := repository2.NewSequenceDynamoRepository(ddb)
	customerRepo := repository2.NewCustomerDynamoRepository(ddb)

	scratchStore := scratch.NewRedisScratchStore(cache.ConnectRedis())

	var gateway interfaces.INotificationGateway
	waGateway, err := messaging.NewWhatsAppGateway(os.Getenv("WHATSAPP_GATEWAY_URL"), os.Getenv("WHATSAPP_GATEWAY_TOKEN"))
	if err != nil {
		log.Printf("WhatsApp gateway not configured: %v", err)
	} else {
		gateway = waGateway
	}

	sequenceUseCase := usecase.NewSequenceUseCase(sequenceRepo, orderRepo)
	draftManager := usecase.NewDraftManager(orderRepo, scratchStore, sequenceUseCase)
	draftManager.SetAutosaveObserver(func(err error) {
		log.Printf("[draft][autosave] best-effort save failed err=%v", err)
	})
	wizardUseCase := usecase.NewWizardUseCase(draftManager)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, customerRepo, gateway)

	wizardHandler := handlers.NewWizardHandler(wizardUseCase)
	orderHandler := handlers.NewServiceOrderHandler(orderUseCase, sequenceUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addServiceOrderRoutes(v1, wizardHandler, orderHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
