package router

import (
	"github.com/gin-gonic/gin"

	"forgepulse.app/tracker/internal/http/handler"
)

func CatalogRouter(router *gin.RouterGroup, handler *handler.CatalogHandler) {
	router.GET("/events", handler.ListEvents)
	router.GET("/issues", handler.ListIssues)
	router.GET("/labels", handler.ListLabelTimelines)
	router.GET("/actors/:login", handler.GetActor)
}
