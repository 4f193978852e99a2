// Command vizweb serves step-by-step A* searches over HTTP.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pdrpinto/astarviz/config"
	"github.com/pdrpinto/astarviz/web"
)

func main() {
	appLogger := config.NewLogger("APP", config.ColorGreen, os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		config.Errorf(appLogger, "%v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	controller := web.NewSessionController(web.Config{
		CellSize:           cfg.CellSize,
		DefaultSize:        cfg.GridSize(),
		MaxSize:            500,
		DefaultProbability: cfg.ObstacleProbability,
		MaxSessions:        64,
		Logger:             config.NewLogger("VIEWER", config.ColorMagenta, os.Stdout),
	})
	router := web.NewRouter(controller)

	config.Infof(appLogger, "viewer listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		config.Errorf(appLogger, "starting server: %v", err)
		os.Exit(1)
	}
}
