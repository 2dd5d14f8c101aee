package routes

import (
	"sisgenius/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWizard = "/wizard"
	PathOrders = "/orders"
)

func addServiceOrderRoutes(rg *gin.RouterGroup, wizardHandler *handlers.WizardHandler, orderHandler *handlers.ServiceOrderHandler) {
	wizard := rg.Group(PathWizard)
	{
		// One wizard per X-Session-ID; drafts autosave to scratch storage.
		wizard.POST("/open", wizardHandler.Open)
		wizard.GET("", wizardHandler.Current)
		wizard.PATCH("/draft", wizardHandler.UpdateDraft)
		wizard.POST("/advance", wizardHandler.Advance)
		wizard.POST("/retreat", wizardHandler.Retreat)
		wizard.POST("/commit", wizardHandler.Commit)
		wizard.DELETE("", wizardHandler.Discard)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id/status", orderHandler.UpdateStatus)
		orders.POST("/:id/status/notify", orderHandler.NotifyCustomer)
	}

	admin := rg.Group("/admin")
	{
		// One-time maintenance pass for legacy orders without a number.
		admin.POST("/orders/backfill-numbers", orderHandler.BackfillNumbers)
	}
}
