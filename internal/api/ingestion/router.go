package ingestion

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, store CustomerStore) {
	service := NewService(store)
	controller := NewController(service)
	router.POST("/customers", controller.IngestCustomers)
	router.POST("/orders", controller.IngestOrders)
}
