package router

import (
	"github.com/gin-gonic/gin"

	"forgepulse.app/tracker/internal/http/handler"
)

func SyncRouter(router *gin.RouterGroup, handler *handler.SyncHandler) {
	router.POST("", handler.TriggerSync)
	router.POST("/issues", handler.ReplayIssue)
}
