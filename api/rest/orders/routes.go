package orders

import (
	"codeberg.org/wcorrea/apierror/library/orders"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, svc *orders.Service) {
	group := rg.Group("/orders")

	group.POST("", CreateOrder(svc))
	group.GET("", ListOrders(svc))
	group.GET("/:id", GetOrder(svc))
	group.POST("/:id/close", CloseOrder(svc))
	group.DELETE("/:id", DeleteOrder(svc))
}
