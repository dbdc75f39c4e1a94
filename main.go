package main

import (
	"main/api"
	"main/core"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("=== Object Store Service Starting ===")

	// 1. Load configuration (config.json in the user config dir, env overrides)
	core.LoadConfig()

	// 2. Resolve the storage backend through the locator; everything below
	//    receives this handle by injection
	backend := core.GetBackend()

	cfg := core.GetConfig()
	log.WithFields(log.Fields{
		"backend":   cfg.Backend,
		"data_path": cfg.DataPath,
	}).Info("Storage backend resolved")

	// 3. Start web service
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(backend)

	log.WithField("addr", cfg.ListenAddr).Info("Service ready")
	log.Fatal(router.Run(cfg.ListenAddr))
}
