package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forgepulse.app/tracker/internal/http/handler"
	"forgepulse.app/tracker/internal/runlock"
	"forgepulse.app/tracker/internal/service"
	"forgepulse.app/tracker/internal/store"
)

type RouterConfig struct {
	Registry *prometheus.Registry
}

func SetupRoutes(router *gin.Engine, stores *store.Stores, sync service.SyncService, lock *runlock.Lock, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		catalogHandler := handler.NewCatalogHandler(stores.Events(), stores.Issues(), stores.LabelTimelines(), stores.Actors())
		CatalogRouter(v1, catalogHandler)

		syncHandler := handler.NewSyncHandler(sync, lock)
		SyncRouter(v1.Group("/sync"), syncHandler)
	}
}
