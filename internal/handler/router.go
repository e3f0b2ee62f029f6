package handler

import (
	_ "address-api/docs"
	"address-api/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the address routes and the supporting endpoints.
func NewRouter(addresses *AddressHandler, store Pinger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(), metrics.Middleware())

	r.GET("/health", HealthHandler(store))
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	g := r.Group("/addresses")
	g.POST("/", addresses.CreateAddress)
	g.GET("/", addresses.ListAddresses)
	g.GET("/nearby/", addresses.NearbyAddresses)
	g.PUT("/:id", addresses.UpdateAddress)
	g.DELETE("/:id", addresses.DeleteAddress)

	return r
}
